// Package evaluate measures how well a trained alphabet separates its own
// characters.
package evaluate

import (
	"slices"

	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type Miss struct {
	Index    int
	Expected rune
	Got      rune
	Distance int
}

type Report struct {
	Total   int
	Correct int
	// Labels orders the rows and columns of Confusion.
	Labels []rune
	// Confusion counts expected (row) against recognized (column).
	Confusion *mat.Dense
	Misses    []Miss

	MeanDistance   float64
	StdDevDistance float64
}

func (r *Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Recall is the share of label's samples that were recognized as label.
func (r *Report) Recall(label rune) float64 {
	i := slices.Index(r.Labels, label)
	if i < 0 {
		return 0
	}
	row := r.Confusion.RowView(i)
	total := mat.Sum(row)
	if total == 0 {
		return 0
	}
	return row.AtVec(i) / total
}

// LeaveOneOut matches every stored character against a copy of a with that
// character removed.
func LeaveOneOut(a *alphabet.Alphabet) (*Report, error) {
	chars := a.Characters()
	if len(chars) < 2 {
		return nil, status.Failf("evaluate: need at least 2 characters, have %d", len(chars))
	}

	var labels []rune
	for _, c := range chars {
		labels = append(labels, c.CodePoint)
	}
	slices.Sort(labels)
	labels = slices.Compact(labels)
	index := make(map[rune]int, len(labels))
	for i, r := range labels {
		index[r] = i
	}

	r := &Report{
		Total:     len(chars),
		Labels:    labels,
		Confusion: mat.NewDense(len(labels), len(labels), nil),
	}
	distances := make([]float64, 0, len(chars))
	for i, c := range chars {
		rest := a.Clone()
		if err := rest.Remove(i); err != nil {
			return nil, err
		}
		m, err := rest.MatchCharacter(c)
		if err != nil {
			return nil, err
		}
		row, col := index[c.CodePoint], index[m.CodePoint]
		r.Confusion.Set(row, col, r.Confusion.At(row, col)+1)
		distances = append(distances, float64(m.Distance))
		if m.CodePoint == c.CodePoint {
			r.Correct++
		} else {
			r.Misses = append(r.Misses, Miss{Index: i, Expected: c.CodePoint, Got: m.CodePoint, Distance: m.Distance})
		}
	}
	r.MeanDistance, r.StdDevDistance = stat.MeanStdDev(distances, nil)
	return r, nil
}
