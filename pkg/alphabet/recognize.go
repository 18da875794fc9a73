package alphabet

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/codemap"
	"github.com/ThatOtherAndrew/Unistroke/pkg/fixed"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
)

// unknownCodePoint labels strokes classified only to be matched.
const unknownCodePoint rune = 1

// Match is the outcome of a nearest-neighbour search.
type Match struct {
	Index     int  // index of the winning character
	CodePoint rune // its code point
	Distance  int  // weighted distance to the unknown
}

// MatchCharacter finds the stored character closest to u.
func (a *Alphabet) MatchCharacter(u Character) (Match, error) {
	if err := a.usable(); err != nil {
		return Match{}, err
	}
	if err := a.checkShape(u); err != nil {
		return Match{}, err
	}
	n := a.codeMap.Len()
	if len(a.chars) == 0 {
		return Match{}, status.Failf("alphabet: no characters to match against")
	}

	best := Match{Index: -1}
	for i, c := range a.chars {
		d := 0
		for j, bias := range a.bias {
			diff := u.Measures[j] - c.Measures[j]
			d += fixed.RoundingDivide(diff*diff*bias, fixed.Scale*fixed.Scale)
		}
		if i != 0 && d > best.Distance {
			continue
		}
		for j, code := range u.Codes {
			k := codemap.Distance(code, c.Codes[j], n)
			d += k * k * fixed.Scale
		}
		if i == 0 || d < best.Distance {
			best = Match{Index: i, CodePoint: c.CodePoint, Distance: d}
		}
	}
	return best, nil
}

// Match classifies ic and returns its nearest stored character.
func (a *Alphabet) Match(ic *stroke.InterpolatedCharacter) (Match, error) {
	u, err := a.Classify(ic)
	if err != nil {
		return Match{}, err
	}
	return a.MatchCharacter(u)
}

// MatchRaw resamples raw and returns its nearest stored character.
func (a *Alphabet) MatchRaw(raw []stroke.Coordinate) (Match, error) {
	u, err := a.ClassifyRaw(unknownCodePoint, raw)
	if err != nil {
		return Match{}, err
	}
	return a.MatchCharacter(u)
}

// Recognize returns the code point of the stored character nearest ic.
func (a *Alphabet) Recognize(ic *stroke.InterpolatedCharacter) (rune, error) {
	m, err := a.Match(ic)
	if err != nil {
		return 0, err
	}
	return m.CodePoint, nil
}

// RecognizeRaw returns the code point of the stored character nearest the
// raw stroke.
func (a *Alphabet) RecognizeRaw(raw []stroke.Coordinate) (rune, error) {
	m, err := a.MatchRaw(raw)
	if err != nil {
		return 0, err
	}
	return m.CodePoint, nil
}
