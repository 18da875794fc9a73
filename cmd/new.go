package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/Unistroke/internal/preset"
	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/spf13/cobra"
)

var forceNew bool

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty alphabet with the default direction map",
	Args:  cobra.NoArgs,
	RunE:  newAlphabet,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().BoolVarP(&forceNew, "force", "f", false, "overwrite an existing alphabet")
}

func newAlphabet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path := resolveAlphabetPath(settings)

	if _, err := os.Stat(path); err == nil && !forceNew {
		return fmt.Errorf("alphabet already exists at %s, use --force to replace it", path)
	}

	a, err := preset.NewAlphabet()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := alphabet.SaveFile(path, a); err != nil {
		return fmt.Errorf("failed to save alphabet: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Created alphabet:", path)
	return nil
}
