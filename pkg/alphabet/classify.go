package alphabet

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/fixed"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
)

// Classify converts an interpolated character into a Character carrying
// ic.CodePoint. Each segment gets the directional code of its delta, and
// each region gets
//
//	Scale * width / count
//
// where count is how often the region's most frequent code occurs in it.
// A region made of one repeated code scores exactly Scale. The score rises
// towards Scale*width as the stroke changes direction more often.
func (a *Alphabet) Classify(ic *stroke.InterpolatedCharacter) (Character, error) {
	if err := a.usable(); err != nil {
		return Character{}, err
	}
	if ic == nil {
		return Character{}, status.Failf("alphabet: nil interpolated character")
	}
	if ic.Segments() != a.segments {
		return Character{}, status.Conflictf("alphabet: stroke has %d segments, alphabet %d",
			ic.Segments(), a.segments)
	}
	n := a.codeMap.Len()
	if err := status.CheckAlloc("alphabet: histogram", n); err != nil {
		return Character{}, err
	}

	c := Character{
		CodePoint: ic.CodePoint,
		Codes:     make([]int, a.segments),
		Measures:  make([]int, len(a.regions)),
	}
	pts := ic.Coordinates
	for i := range c.Codes {
		code, err := a.codeMap.Code(pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y)
		if err != nil {
			return Character{}, err
		}
		c.Codes[i] = code
	}

	hits := make([]int, n)
	for i, r := range a.regions {
		clear(hits)
		best := 0
		for _, code := range c.Codes[r.Start : r.Stop+1] {
			hits[code]++
			if hits[code] > best {
				best = hits[code]
			}
		}
		c.Measures[i] = fixed.RoundingDivide(fixed.Scale*r.Width(), best)
	}
	return c, nil
}

// ClassifyRaw resamples raw to the alphabet's segment count and classifies
// it under code point r.
func (a *Alphabet) ClassifyRaw(r rune, raw []stroke.Coordinate) (Character, error) {
	if err := a.usable(); err != nil {
		return Character{}, err
	}
	ic, err := stroke.FromRaw(r, a.segments, raw)
	if err != nil {
		return Character{}, err
	}
	defer ic.Release()
	return a.Classify(ic)
}
