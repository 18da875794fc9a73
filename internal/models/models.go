package models

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sample is one recorded stroke and the character it was written as.
// Char may be empty for unlabelled input.
type Sample struct {
	Char   string  `json:"char,omitempty"`
	Points []Point `json:"points"`
}

func (s Sample) Coordinates() []stroke.Coordinate {
	out := make([]stroke.Coordinate, len(s.Points))
	for i, p := range s.Points {
		out[i] = stroke.Coordinate{X: p.X, Y: p.Y}
	}
	return out
}

func FromCoordinates(char string, coords []stroke.Coordinate) Sample {
	s := Sample{Char: char, Points: make([]Point, len(coords))}
	for i, c := range coords {
		s.Points[i] = Point{X: c.X, Y: c.Y}
	}
	return s
}
