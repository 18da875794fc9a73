// Package preset holds the default recognizer geometry: sixteen directions
// 22.5 degrees apart, 64 segments and seven activity regions (the whole
// stroke, its halves and its quarters).
package preset

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/ThatOtherAndrew/Unistroke/pkg/codemap"
)

const DefaultSegments = 64

// Boundary vectors, counter-clockwise from just below east.
var (
	directionsX = []int{490, 490, 415, 278, 98, -98, -278, -415, -490, -490, -415, -278, -98, 98, 278, 415}
	directionsY = []int{-98, 98, 278, 415, 490, 490, 415, 278, 98, -98, -278, -415, -490, -490, -415, -278}
)

// DefaultRegions returns the seven default activity regions.
func DefaultRegions() []alphabet.ActivityRegion {
	return []alphabet.ActivityRegion{
		{Start: 0, Stop: 63},
		{Start: 0, Stop: 31},
		{Start: 32, Stop: 63},
		{Start: 0, Stop: 15},
		{Start: 16, Stop: 31},
		{Start: 32, Stop: 47},
		{Start: 48, Stop: 63},
	}
}

// DefaultMap returns a finalized copy of the sixteen-direction map.
func DefaultMap() *codemap.Map {
	m, err := codemap.FromVectors(directionsX, directionsY)
	if err != nil {
		panic("preset: invalid default map: " + err.Error())
	}
	return m
}

// NewAlphabet returns an empty alphabet with the default geometry.
func NewAlphabet() (*alphabet.Alphabet, error) {
	regions := DefaultRegions()
	a, err := alphabet.New(DefaultMap(), len(regions), DefaultSegments)
	if err != nil {
		return nil, err
	}
	for i, r := range regions {
		if err := a.SetRegion(i, r); err != nil {
			return nil, err
		}
	}
	return a, nil
}
