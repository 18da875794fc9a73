package cmd

import (
	"fmt"
	"log"
	"unicode/utf8"

	gestures "github.com/ThatOtherAndrew/Unistroke/internal/gesture"
	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train <samples.json>",
	Short: "Add every labelled sample in a file to the alphabet",
	Args:  cobra.ExactArgs(1),
	RunE:  train,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func train(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, path, err := loadAlphabet(settings)
	if err != nil {
		return err
	}
	samples, err := gestures.LoadSamples(args[0])
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}

	added := 0
	for i, s := range samples {
		r, size := utf8.DecodeRuneInString(s.Char)
		if size == 0 || size != len(s.Char) || r == utf8.RuneError {
			log.Printf("Skipping sample %d: label %q is not a single character", i, s.Char)
			continue
		}
		points := gestures.Clean(s.Points, settings.MinPointDistance, settings.MaxPoints)
		if len(points) == 0 {
			log.Printf("Skipping sample %d: no points", i)
			continue
		}
		if err := a.AddRaw(r, pointsToCoordinates(points)); err != nil {
			log.Printf("Skipping sample %d: %v", i, err)
			continue
		}
		added++
	}

	if err := alphabet.SaveFile(path, a); err != nil {
		return fmt.Errorf("failed to save alphabet: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Trained %d character(s), alphabet now holds %d\n", added, a.Len())
	return nil
}
