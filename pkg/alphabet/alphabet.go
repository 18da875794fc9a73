package alphabet

import (
	"slices"

	"github.com/ThatOtherAndrew/Unistroke/pkg/codemap"
	"github.com/ThatOtherAndrew/Unistroke/pkg/fixed"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
)

const (
	// MaxBias bounds a region bias so weighted region terms fit in 64 bits.
	MaxBias = 1 << 16

	// MaxMeasure is the largest activity measure any stroke can produce.
	MaxMeasure = fixed.Scale * stroke.MaxSegments
)

// ActivityRegion is an inclusive range of segment indices.
type ActivityRegion struct {
	Start, Stop int
}

// Width returns the number of segments the region covers.
func (r ActivityRegion) Width() int {
	return r.Stop - r.Start + 1
}

// Character is a trained fingerprint. len(Codes) is the segment count and
// len(Measures) the region count.
type Character struct {
	CodePoint rune
	Codes     []int
	Measures  []int
}

// Clone returns a deep copy of c.
func (c Character) Clone() Character {
	return Character{
		CodePoint: c.CodePoint,
		Codes:     slices.Clone(c.Codes),
		Measures:  slices.Clone(c.Measures),
	}
}

// Alphabet is a trained character set together with the geometry used to
// build and compare its characters.
type Alphabet struct {
	segments int
	codeMap  *codemap.Map
	regions  []ActivityRegion
	bias     []int
	chars    []Character
	released bool
}

// New returns an empty alphabet. The map is copied and finalized; later
// changes to m do not affect the alphabet. Every region initially spans
// the whole stroke and every bias is fixed.Scale.
func New(m *codemap.Map, regions, segments int) (*Alphabet, error) {
	if m == nil || m.Len() < 1 {
		return nil, status.Failf("alphabet: nil code map")
	}
	if regions < 1 || segments < 1 {
		return nil, status.Failf("alphabet: %d regions, %d segments", regions, segments)
	}
	if err := status.CheckAlloc("alphabet: regions", regions); err != nil {
		return nil, err
	}
	if err := status.CheckAlloc("alphabet: segments", segments); err != nil {
		return nil, err
	}
	if segments > stroke.MaxSegments {
		return nil, status.Failf("alphabet: %d segments exceeds %d", segments, stroke.MaxSegments)
	}

	cm := m.Clone()
	cm.Finalize()

	a := &Alphabet{
		segments: segments,
		codeMap:  cm,
		regions:  make([]ActivityRegion, regions),
		bias:     make([]int, regions),
	}
	for i := range a.regions {
		a.regions[i] = ActivityRegion{Start: 0, Stop: segments - 1}
		a.bias[i] = fixed.Scale
	}
	return a, nil
}

func (a *Alphabet) usable() error {
	if a == nil || a.released {
		return status.Failf("alphabet: nil or released")
	}
	return nil
}

// Segments returns the number of segments every character is built from.
func (a *Alphabet) Segments() int {
	if a.usable() != nil {
		return 0
	}
	return a.segments
}

// RegionCount returns the number of activity regions.
func (a *Alphabet) RegionCount() int {
	if a.usable() != nil {
		return 0
	}
	return len(a.regions)
}

// CodeMap returns a copy of the alphabet's directional code map.
func (a *Alphabet) CodeMap() *codemap.Map {
	if a.usable() != nil {
		return nil
	}
	return a.codeMap.Clone()
}

// SetRegion replaces region i. Measures of characters already stored are
// not recomputed.
func (a *Alphabet) SetRegion(i int, r ActivityRegion) error {
	if err := a.usable(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.regions) {
		return status.Failf("alphabet: region %d out of range", i)
	}
	if r.Start < 0 || r.Start > r.Stop || r.Stop >= a.segments {
		return status.Failf("alphabet: region [%d,%d] outside [0,%d]", r.Start, r.Stop, a.segments-1)
	}
	a.regions[i] = r
	return nil
}

// Region returns region i.
func (a *Alphabet) Region(i int) (ActivityRegion, error) {
	if err := a.usable(); err != nil {
		return ActivityRegion{}, err
	}
	if i < 0 || i >= len(a.regions) {
		return ActivityRegion{}, status.Failf("alphabet: region %d out of range", i)
	}
	return a.regions[i], nil
}

// Regions returns a copy of all regions.
func (a *Alphabet) Regions() []ActivityRegion {
	if a.usable() != nil {
		return nil
	}
	return slices.Clone(a.regions)
}

// SetBias sets the weight of region i in the match distance. fixed.Scale
// is neutral and 0 ignores the region.
func (a *Alphabet) SetBias(i, bias int) error {
	if err := a.usable(); err != nil {
		return err
	}
	if i < 0 || i >= len(a.bias) {
		return status.Failf("alphabet: region %d out of range", i)
	}
	if bias < 0 || bias > MaxBias {
		return status.Failf("alphabet: bias %d outside [0,%d]", bias, MaxBias)
	}
	a.bias[i] = bias
	return nil
}

// Bias returns the weight of region i.
func (a *Alphabet) Bias(i int) (int, error) {
	if err := a.usable(); err != nil {
		return 0, err
	}
	if i < 0 || i >= len(a.bias) {
		return 0, status.Failf("alphabet: region %d out of range", i)
	}
	return a.bias[i], nil
}

// Len returns the number of stored characters.
func (a *Alphabet) Len() int {
	if a.usable() != nil {
		return 0
	}
	return len(a.chars)
}

// Character returns a copy of character i.
func (a *Alphabet) Character(i int) (Character, error) {
	if err := a.usable(); err != nil {
		return Character{}, err
	}
	if i < 0 || i >= len(a.chars) {
		return Character{}, status.Failf("alphabet: character %d out of range", i)
	}
	return a.chars[i].Clone(), nil
}

// Characters returns copies of all stored characters in index order.
func (a *Alphabet) Characters() []Character {
	if a.usable() != nil || len(a.chars) == 0 {
		return nil
	}
	out := make([]Character, len(a.chars))
	for i, c := range a.chars {
		out[i] = c.Clone()
	}
	return out
}

// Find returns the indices of every character trained as r, ascending.
func (a *Alphabet) Find(r rune) []int {
	if a.usable() != nil {
		return nil
	}
	var idx []int
	for i, c := range a.chars {
		if c.CodePoint == r {
			idx = append(idx, i)
		}
	}
	return idx
}

// AddInterpolated classifies ic and stores the result under ic.CodePoint.
func (a *Alphabet) AddInterpolated(ic *stroke.InterpolatedCharacter) error {
	if err := a.usable(); err != nil {
		return err
	}
	if ic == nil {
		return status.Failf("alphabet: nil interpolated character")
	}
	if ic.CodePoint == 0 {
		return status.Failf("alphabet: code point 0 is reserved")
	}
	c, err := a.Classify(ic)
	if err != nil {
		return err
	}
	return a.push(c)
}

// AddRaw resamples raw to the alphabet's segment count and stores it as r.
func (a *Alphabet) AddRaw(r rune, raw []stroke.Coordinate) error {
	if err := a.usable(); err != nil {
		return err
	}
	ic, err := stroke.FromRaw(r, a.segments, raw)
	if err != nil {
		return err
	}
	defer ic.Release()
	return a.AddInterpolated(ic)
}

// AddCharacter stores a copy of an already classified character.
func (a *Alphabet) AddCharacter(c Character) error {
	if err := a.usable(); err != nil {
		return err
	}
	if err := a.validate(c); err != nil {
		return err
	}
	return a.push(c.Clone())
}

func (a *Alphabet) push(c Character) error {
	if err := status.CheckAlloc("alphabet: characters", len(a.chars)+1); err != nil {
		return err
	}
	a.chars = append(a.chars, c)
	Logger().Debug("alphabet: character added",
		"index", len(a.chars)-1, "code_point", c.CodePoint, "count", len(a.chars))
	return nil
}

// validate checks that c could have been produced by this alphabet.
func (a *Alphabet) validate(c Character) error {
	if c.CodePoint == 0 {
		return status.Failf("alphabet: code point 0 is reserved")
	}
	return a.checkShape(c)
}

func (a *Alphabet) checkShape(c Character) error {
	if len(c.Codes) != a.segments || len(c.Measures) != len(a.regions) {
		return status.Conflictf("alphabet: character has %d codes and %d measures, want %d and %d",
			len(c.Codes), len(c.Measures), a.segments, len(a.regions))
	}
	n := a.codeMap.Len()
	for i, code := range c.Codes {
		if code < 0 || code >= n {
			return status.Failf("alphabet: code %d at segment %d outside [0,%d)", code, i, n)
		}
	}
	for i, m := range c.Measures {
		if m < 0 || m > MaxMeasure {
			return status.Failf("alphabet: measure %d in region %d outside [0,%d]", m, i, MaxMeasure)
		}
	}
	return nil
}

// Remove deletes character i by moving the last character into its slot.
func (a *Alphabet) Remove(i int) error {
	if err := a.usable(); err != nil {
		return err
	}
	n := len(a.chars)
	if i < 0 || i >= n {
		return status.Failf("alphabet: character %d out of range", i)
	}
	removed := a.chars[i].CodePoint
	a.chars[i] = a.chars[n-1]
	a.chars[n-1] = Character{}
	if n == 1 {
		a.chars = nil
	} else {
		a.chars = a.chars[:n-1]
	}
	Logger().Debug("alphabet: character removed", "index", i, "code_point", removed, "count", len(a.chars))
	return nil
}

// Release drops every character and all configuration. Any later call
// fails with status.ErrFailed.
func (a *Alphabet) Release() {
	if a == nil {
		return
	}
	a.chars = nil
	a.regions = nil
	a.bias = nil
	a.codeMap = nil
	a.segments = 0
	a.released = true
}

// Clone returns a deep copy, or nil for a nil or released alphabet.
func (a *Alphabet) Clone() *Alphabet {
	if a.usable() != nil {
		return nil
	}
	out := &Alphabet{
		segments: a.segments,
		codeMap:  a.codeMap.Clone(),
		regions:  slices.Clone(a.regions),
		bias:     slices.Clone(a.bias),
	}
	if len(a.chars) > 0 {
		out.chars = make([]Character, len(a.chars))
		for i, c := range a.chars {
			out.chars[i] = c.Clone()
		}
	}
	return out
}
