package cmd

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ThatOtherAndrew/Unistroke/internal/config"
	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/spf13/cobra"
)

var (
	alphabetPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "unistroke",
	Short: "Train and recognize single-stroke handwritten characters",
	Long: `unistroke keeps an alphabet of trained single-stroke characters and
recognizes new strokes against it. Strokes are read from JSON sample files.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			alphabet.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: slog.LevelDebug})))
		} else {
			alphabet.SetLogger(nil)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)

	rootCmd.PersistentFlags().StringVar(&alphabetPath, "alphabet", "",
		"alphabet file (default from settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine activity to stderr")
}

func loadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func resolveAlphabetPath(settings *config.Settings) string {
	if alphabetPath != "" {
		return alphabetPath
	}
	return settings.AlphabetPath
}

// loadAlphabet returns the alphabet named by --alphabet or the settings,
// plus the path it came from.
func loadAlphabet(settings *config.Settings) (*alphabet.Alphabet, string, error) {
	path := resolveAlphabetPath(settings)
	a, err := alphabet.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, path, fmt.Errorf("no alphabet at %s, create one with 'unistroke new'", path)
	}
	if err != nil {
		return nil, path, fmt.Errorf("failed to load alphabet: %w", err)
	}
	return a, path, nil
}
