package gestures

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/Unistroke/internal/models"
)

const (
	DefaultMinDistance = 2
	DefaultMaxPoints   = 2048
)

func LoadSamples(path string) ([]models.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Sample{}, nil
		}
		return nil, err
	}

	var samples []models.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, err
	}

	return samples, nil
}

// SaveSample appends s to the sample file at path, creating it if needed.
func SaveSample(path string, s models.Sample) error {
	samples, err := LoadSamples(path)
	if err != nil {
		return err
	}
	return SaveSamples(path, append(samples, s))
}

func SaveSamples(path string, samples []models.Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(samples)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Recorder accumulates pointer positions, dropping jitter closer than
// MinDistance to the previous accepted point and keeping only the newest
// MaxPoints.
type Recorder struct {
	MinDistance int
	MaxPoints   int

	points []models.Point
}

func NewRecorder(minDistance, maxPoints int) *Recorder {
	return &Recorder{MinDistance: minDistance, MaxPoints: maxPoints}
}

// AddPoint reports whether the point was kept.
func (r *Recorder) AddPoint(x, y int) bool {
	newPoint := models.Point{X: x, Y: y}

	if len(r.points) > 0 {
		lastPoint := r.points[len(r.points)-1]
		dx := newPoint.X - lastPoint.X
		dy := newPoint.Y - lastPoint.Y
		if dx*dx+dy*dy <= r.MinDistance*r.MinDistance {
			return false
		}
	}

	r.points = append(r.points, newPoint)
	if r.MaxPoints > 0 && len(r.points) > r.MaxPoints {
		r.points = r.points[len(r.points)-r.MaxPoints:]
	}
	return true
}

func (r *Recorder) Points() []models.Point {
	return append([]models.Point(nil), r.points...)
}

func (r *Recorder) Len() int { return len(r.points) }

func (r *Recorder) Reset() { r.points = nil }

// Clean replays points through a fresh Recorder.
func Clean(points []models.Point, minDistance, maxPoints int) []models.Point {
	r := NewRecorder(minDistance, maxPoints)
	for _, p := range points {
		r.AddPoint(p.X, p.Y)
	}
	return r.Points()
}
