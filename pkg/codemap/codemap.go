// Package codemap holds the directional code map: the counter-clockwise
// ordered set of boundary vectors a stroke segment is bucketed against.
//
// Code j covers the directions from vector j (inclusive) counter-clockwise
// up to vector j+1. Classification never computes an angle; it only
// compares cross products, so the search space is split into the right
// (x > 0) and left (x <= 0) half-planes and each half-plane is scanned
// from its "begin" vector to its "end" vector.
package codemap

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
)

const (
	// MaxComponent bounds the magnitude of a vector component. Cross
	// products against stroke deltas must fit in 64 bits.
	MaxComponent = 1 << 20

	// MaxCodes bounds the number of mappable codes. Match distances grow
	// with the square of the circular code distance.
	MaxCodes = 1 << 12
)

// Boundaries are the half-plane search limits computed by Finalize. An
// index of -1 means the half-plane holds no vector.
type Boundaries struct {
	PositiveBegin int
	NegativeBegin int
	PositiveEnd   int
	NegativeEnd   int
}

// Map is a directional code map. The zero value is not usable; build one
// with New or FromVectors.
type Map struct {
	x, y      []int
	bounds    Boundaries
	finalized bool
}

// New returns a map of n zero vectors. It must be filled with Set and
// finalized before use.
func New(n int) (*Map, error) {
	if n < 1 {
		return nil, status.Failf("codemap: %d mappable codes", n)
	}
	if err := status.CheckAlloc("codemap: vectors", 2*n); err != nil {
		return nil, err
	}
	if n > MaxCodes {
		return nil, status.Failf("codemap: %d mappable codes exceeds %d", n, MaxCodes)
	}
	return &Map{
		x:      make([]int, n),
		y:      make([]int, n),
		bounds: Boundaries{-1, -1, -1, -1},
	}, nil
}

// FromVectors copies x and y into a new map and finalizes it.
func FromVectors(x, y []int) (*Map, error) {
	if len(x) != len(y) {
		return nil, status.Conflictf("codemap: %d x components, %d y components", len(x), len(y))
	}
	m, err := New(len(x))
	if err != nil {
		return nil, err
	}
	for i := range x {
		if err := m.Set(i, x[i], y[i]); err != nil {
			return nil, err
		}
	}
	m.Finalize()
	return m, nil
}

// Len returns the number of mappable codes.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.x)
}

// Set stores vector i. The map must be finalized again afterwards.
func (m *Map) Set(i, x, y int) error {
	if m == nil || i < 0 || i >= len(m.x) {
		return status.Failf("codemap: index %d out of range", i)
	}
	if outside(x) || outside(y) {
		return status.Failf("codemap: vector (%d,%d) outside ±%d", x, y, MaxComponent)
	}
	m.x[i], m.y[i] = x, y
	m.finalized = false
	return nil
}

// Vector returns vector i.
func (m *Map) Vector(i int) (x, y int, err error) {
	if m == nil || i < 0 || i >= len(m.x) {
		return 0, 0, status.Failf("codemap: index %d out of range", i)
	}
	return m.x[i], m.y[i], nil
}

// Vectors returns copies of the x and y components.
func (m *Map) Vectors() (x, y []int) {
	if m == nil {
		return nil, nil
	}
	return append([]int(nil), m.x...), append([]int(nil), m.y...)
}

// Finalized reports whether the boundaries reflect the current vectors.
func (m *Map) Finalized() bool {
	return m != nil && m.finalized
}

// Finalize computes the half-plane boundaries. In each half-plane "begin"
// is the vector reached first going counter-clockwise from the vertical
// and "end" the one reached last; ties go to the later index.
func (m *Map) Finalize() {
	if m == nil {
		return
	}
	b := Boundaries{-1, -1, -1, -1}
	pbx, pby := 0, 1
	pex, pey := 0, -1
	nbx, nby := 0, -1
	nex, ney := 0, 1
	for i := range m.x {
		x, y := m.x[i], m.y[i]
		if x > 0 {
			if x*pby >= y*pbx {
				b.PositiveBegin, pbx, pby = i, x, y
			}
			if x*pey <= y*pex {
				b.PositiveEnd, pex, pey = i, x, y
			}
			continue
		}
		if x*nby >= y*nbx {
			b.NegativeBegin, nbx, nby = i, x, y
		}
		if x*ney <= y*nex {
			b.NegativeEnd, nex, ney = i, x, y
		}
	}
	m.bounds = b
	m.finalized = true
}

// Boundaries returns the current half-plane limits.
func (m *Map) Boundaries() Boundaries {
	if m == nil {
		return Boundaries{-1, -1, -1, -1}
	}
	return m.bounds
}

// Restore installs previously computed boundaries, for example ones read
// from an alphabet file, and marks the map finalized.
func (m *Map) Restore(b Boundaries) error {
	if m == nil {
		return status.Failf("codemap: restore into nil map")
	}
	n := len(m.x)
	for _, v := range []int{b.PositiveBegin, b.NegativeBegin, b.PositiveEnd, b.NegativeEnd} {
		if v < -1 || v >= n {
			return status.Failf("codemap: boundary %d outside [-1,%d)", v, n)
		}
	}
	if (b.PositiveBegin == -1) != (b.PositiveEnd == -1) || (b.NegativeBegin == -1) != (b.NegativeEnd == -1) {
		return status.Failf("codemap: half-open boundaries %+v", b)
	}
	if b.PositiveBegin == -1 && b.NegativeBegin == -1 {
		return status.Failf("codemap: no boundaries")
	}
	m.bounds = b
	m.finalized = true
	return nil
}

// Code buckets the segment (dx, dy) into a directional code.
//
// When the segment's half-plane holds no vector, the end code of the other
// half-plane is returned.
func (m *Map) Code(dx, dy int) (int, error) {
	if !m.Finalized() {
		return 0, status.Failf("codemap: map is not finalized")
	}
	n := len(m.x)
	b := m.bounds

	begin, end := b.NegativeBegin, b.NegativeEnd
	fallback := b.PositiveEnd
	if dx > 0 {
		begin, end = b.PositiveBegin, b.PositiveEnd
		fallback = b.NegativeEnd
	}
	if begin == -1 {
		return fallback, nil
	}

	stop := (end + 1) % n
	for j := begin; ; j = (j + 1) % n {
		if dy*m.x[j] < dx*m.y[j] {
			return (j + n - 1) % n, nil
		}
		if (j+1)%n == stop {
			break
		}
	}
	return end, nil
}

// Distance returns the circular distance between codes a and b.
func (m *Map) Distance(a, b int) int {
	return Distance(a, b, m.Len())
}

// Distance returns the circular distance between codes a and b on a map of
// n codes: min(|a-b|, n-|a-b|).
func Distance(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if n-d < d {
		return n - d
	}
	return d
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	return &Map{
		x:         append([]int(nil), m.x...),
		y:         append([]int(nil), m.y...),
		bounds:    m.bounds,
		finalized: m.finalized,
	}
}

// Equal reports whether m and o hold the same vectors and boundaries.
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.x) != len(o.x) || m.bounds != o.bounds || m.finalized != o.finalized {
		return false
	}
	for i := range m.x {
		if m.x[i] != o.x[i] || m.y[i] != o.y[i] {
			return false
		}
	}
	return true
}

func outside(v int) bool {
	return v > MaxComponent || v < -MaxComponent
}
