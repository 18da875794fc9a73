package cmd

import (
	"fmt"
	"strings"

	"github.com/ThatOtherAndrew/Unistroke/internal/evaluate"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the alphabet by recognizing each character against the rest",
	Args:  cobra.NoArgs,
	RunE:  evaluateAlphabet,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func evaluateAlphabet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	a, _, err := loadAlphabet(settings)
	if err != nil {
		return err
	}
	report, err := evaluate.LeaveOneOut(a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Accuracy: %d/%d (%.1f%%)\n", report.Correct, report.Total, 100*report.Accuracy())
	fmt.Fprintf(out, "Distance: mean %.1f, stddev %.1f\n", report.MeanDistance, report.StdDevDistance)
	for _, m := range report.Misses {
		fmt.Fprintf(out, "  %4d  %c recognized as %c (distance %d)\n", m.Index, m.Expected, m.Got, m.Distance)
	}

	labels := make([]string, len(report.Labels))
	for i, r := range report.Labels {
		labels[i] = string(r)
	}
	fmt.Fprintf(out, "Confusion (rows expected, columns recognized) %s\n", strings.Join(labels, " "))
	fmt.Fprintf(out, "%v\n", mat.Formatted(report.Confusion, mat.Squeeze()))
	return nil
}
