package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	gestures "github.com/ThatOtherAndrew/Unistroke/internal/gesture"
	"github.com/ThatOtherAndrew/Unistroke/internal/models"
	"github.com/ThatOtherAndrew/Unistroke/internal/render"
	"github.com/spf13/cobra"
)

var (
	showOutput string
	showJSON   string
	showScale  int
)

var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Reconstruct a trained character as an image or sample",
	Args:  cobra.ExactArgs(1),
	RunE:  showCharacter,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write a PNG to this file")
	showCmd.Flags().StringVar(&showJSON, "json", "", "append the reconstructed stroke to this sample file")
	showCmd.Flags().IntVar(&showScale, "scale", 1, "enlarge the PNG by this factor")
}

func showCharacter(cmd *cobra.Command, args []string) error {
	if showOutput == "" && showJSON == "" {
		return errors.New("nothing to do, pass --output and/or --json")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, _, err := loadAlphabet(settings)
	if err != nil {
		return err
	}

	ic, err := a.ReconstructAt(i, settings.Rect())
	if err != nil {
		return fmt.Errorf("failed to reconstruct character %d: %w", i, err)
	}
	defer ic.Release()

	out := cmd.OutOrStdout()
	if showOutput != "" {
		f, err := os.Create(showOutput)
		if err != nil {
			return err
		}
		opts := render.Options{
			Width:       settings.RenderWidth,
			Height:      settings.RenderHeight,
			StrokeWidth: settings.StrokeWidth,
			Label:       fmt.Sprintf("%c %U", ic.CodePoint, ic.CodePoint),
			Scale:       showScale,
		}
		if err := render.WritePNG(f, ic, opts); err != nil {
			f.Close()
			return fmt.Errorf("failed to render: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Wrote image:", showOutput)
	}
	if showJSON != "" {
		sample := models.FromCoordinates(string(ic.CodePoint), ic.Coordinates)
		if err := gestures.SaveSample(showJSON, sample); err != nil {
			return fmt.Errorf("failed to save sample: %w", err)
		}
		fmt.Fprintln(out, "Appended sample:", showJSON)
	}
	return nil
}
