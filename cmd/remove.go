package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/spf13/cobra"
)

var removeChar string

var removeCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove a character by index, or every sample of one with --char",
	Args:  cobra.MaximumNArgs(1),
	RunE:  removeCharacter,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().StringVarP(&removeChar, "char", "c", "", "remove every entry for this character")
}

func removeCharacter(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (removeChar == "") {
		return errors.New("specify either an index or --char")
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, path, err := loadAlphabet(settings)
	if err != nil {
		return err
	}

	var indices []int
	if removeChar != "" {
		r, size := utf8.DecodeRuneInString(removeChar)
		if size != len(removeChar) || r == utf8.RuneError {
			return fmt.Errorf("--char %q is not a single character", removeChar)
		}
		indices = a.Find(r)
		if len(indices) == 0 {
			return fmt.Errorf("character not found: %s", removeChar)
		}
		// removal moves the last entry into the hole, so go from the back
		slices.Reverse(indices)
	} else {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		indices = []int{i}
	}

	var removed []rune
	for _, i := range indices {
		c, err := a.Character(i)
		if err != nil {
			return fmt.Errorf("character %d: %w", i, err)
		}
		if err := a.Remove(i); err != nil {
			return err
		}
		removed = append(removed, c.CodePoint)
	}

	if err := alphabet.SaveFile(path, a); err != nil {
		return fmt.Errorf("failed to save alphabet: %w", err)
	}
	for _, r := range removed {
		fmt.Fprintln(cmd.OutOrStdout(), "Removed character:", describe(r))
	}
	return nil
}
