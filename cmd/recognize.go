package cmd

import (
	"fmt"

	gestures "github.com/ThatOtherAndrew/Unistroke/internal/gesture"
	"github.com/ThatOtherAndrew/Unistroke/internal/models"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/runenames"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <samples.json>",
	Short: "Recognize every sample in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  recognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
}

func recognize(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, _, err := loadAlphabet(settings)
	if err != nil {
		return err
	}
	samples, err := gestures.LoadSamples(args[0])
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}

	out := cmd.OutOrStdout()
	labelled, correct := 0, 0
	for i, s := range samples {
		points := gestures.Clean(s.Points, settings.MinPointDistance, settings.MaxPoints)
		m, err := a.MatchRaw(pointsToCoordinates(points))
		if err != nil {
			fmt.Fprintf(out, "%d: error: %v\n", i, err)
			continue
		}
		fmt.Fprintf(out, "%d: %s  distance %d", i, describe(m.CodePoint), m.Distance)
		if s.Char != "" {
			labelled++
			if s.Char == string(m.CodePoint) {
				correct++
			} else {
				fmt.Fprintf(out, "  (expected %s)", s.Char)
			}
		}
		fmt.Fprintln(out)
	}
	if labelled > 0 {
		fmt.Fprintf(out, "%d/%d correct\n", correct, labelled)
	}
	return nil
}

// describe formats r as "c  U+XXXX  NAME".
func describe(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%c  %U  %s", r, r, name)
}

func pointsToCoordinates(points []models.Point) []stroke.Coordinate {
	return models.Sample{Points: points}.Coordinates()
}
