package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trained characters",
	Args:  cobra.NoArgs,
	RunE:  listCharacters,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listCharacters(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, path, err := loadAlphabet(settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d segments, %d regions\n", path, a.Segments(), a.RegionCount())
	chars := a.Characters()
	if len(chars) == 0 {
		fmt.Fprintln(out, "No characters trained")
		return nil
	}
	fmt.Fprintln(out, "Trained characters:")
	for i, c := range chars {
		fmt.Fprintf(out, "  %4d  %s\n", i, describe(c.CodePoint))
	}
	return nil
}
