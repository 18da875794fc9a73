// Package stroke turns captured pen samples into interpolated characters:
// a fixed number of points spaced evenly along the stroke's arc length.
package stroke

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/fixed"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
)

const (
	// MaxCoordinate bounds the magnitude of raw sample coordinates so that
	// every intermediate product stays inside 64 bits.
	MaxCoordinate = 1 << 24

	// MaxSegments bounds the resample count for the same reason: the
	// short-stroke magnification factor grows with it.
	MaxSegments = 1 << 12
)

// Coordinate is a single sample in device units.
type Coordinate struct {
	X, Y int
}

// InterpolatedCharacter is a stroke resampled into Segments() segments of
// equal arc length. It holds Segments()+1 points, the first and last of
// which are the stroke's own end points.
type InterpolatedCharacter struct {
	CodePoint   rune
	Coordinates []Coordinate
}

// NewInterpolated allocates an interpolated character with room for the
// given number of segments. Code point 0 is reserved as the error
// character and is rejected.
func NewInterpolated(codePoint rune, segments int) (*InterpolatedCharacter, error) {
	if codePoint == 0 {
		return nil, status.Failf("stroke: code point 0 is reserved")
	}
	if segments < 1 {
		return nil, status.Failf("stroke: segment count %d must be positive", segments)
	}
	if segments > MaxSegments {
		return nil, status.Failf("stroke: segment count %d exceeds %d", segments, MaxSegments)
	}
	return &InterpolatedCharacter{
		CodePoint:   codePoint,
		Coordinates: make([]Coordinate, segments+1),
	}, nil
}

// FromRaw allocates an interpolated character and resamples raw into it.
func FromRaw(codePoint rune, segments int, raw []Coordinate) (*InterpolatedCharacter, error) {
	ic, err := NewInterpolated(codePoint, segments)
	if err != nil {
		return nil, err
	}
	if err := ic.Resample(raw); err != nil {
		return nil, err
	}
	return ic, nil
}

// Segments returns the number of segments, or 0 for a released character.
func (ic *InterpolatedCharacter) Segments() int {
	if ic == nil || len(ic.Coordinates) == 0 {
		return 0
	}
	return len(ic.Coordinates) - 1
}

// Release drops the coordinate storage. The character must not be
// resampled afterwards.
func (ic *InterpolatedCharacter) Release() {
	if ic == nil {
		return
	}
	ic.Coordinates = nil
}

// Clone returns a deep copy.
func (ic *InterpolatedCharacter) Clone() *InterpolatedCharacter {
	if ic == nil {
		return nil
	}
	out := &InterpolatedCharacter{CodePoint: ic.CodePoint}
	out.Coordinates = append([]Coordinate(nil), ic.Coordinates...)
	return out
}

// Resample overwrites ic's points with raw resampled to ic.Segments()
// segments of equal arc length. raw is not modified.
//
// A stroke of zero length resamples to all-zero points. A stroke shorter
// than Segments()*fixed.Scale*10 is magnified first so that interpolation
// keeps its precision; the output is then in magnified units.
func (ic *InterpolatedCharacter) Resample(raw []Coordinate) error {
	segs := ic.Segments()
	if segs < 1 {
		return status.Failf("stroke: resample into released or empty character")
	}
	n := len(raw)
	if n < 1 {
		return status.Failf("stroke: no raw samples")
	}
	for i, c := range raw {
		if c.X > MaxCoordinate || c.X < -MaxCoordinate || c.Y > MaxCoordinate || c.Y < -MaxCoordinate {
			return status.Failf("stroke: sample %d (%d,%d) outside ±%d", i, c.X, c.Y, MaxCoordinate)
		}
	}
	if err := status.CheckAlloc("stroke: distances", n); err != nil {
		return err
	}

	dist := make([]int, n)
	for i := 1; i < n; i++ {
		dx := raw[i].X - raw[i-1].X
		dy := raw[i].Y - raw[i-1].Y
		dist[i] = dist[i-1] + fixed.Sqrt(dx*dx+dy*dy)
	}
	total := dist[n-1]

	out := ic.Coordinates
	if total < 1 {
		clear(out)
		return nil
	}

	pts := raw
	if total < segs*fixed.Scale*10 {
		k := fixed.RoundingDivide(segs*fixed.Scale*20, total)
		pts = make([]Coordinate, n)
		for i, c := range raw {
			pts[i] = Coordinate{X: c.X * k, Y: c.Y * k}
			dist[i] *= k
		}
		total = dist[n-1]
	}

	out[0] = pts[0]
	seg := fixed.RoundingDivide(total, segs)
	cur := 1
	for i := 1; i < segs; i++ {
		target := i * seg
		for cur < n-1 && dist[cur] < target {
			cur++
		}
		prev := pts[cur-1]
		next := pts[cur]
		t := fixed.RoundingDivide(target-dist[cur-1], fixed.RoundingDivide(dist[cur]-dist[cur-1], fixed.Scale))
		out[i] = Coordinate{
			X: prev.X + fixed.RoundingDivide((next.X-prev.X)*t, fixed.Scale),
			Y: prev.Y + fixed.RoundingDivide((next.Y-prev.Y)*t, fixed.Scale),
		}
	}
	out[segs] = pts[n-1]
	return nil
}
