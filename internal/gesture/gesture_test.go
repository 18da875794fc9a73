package gestures_test

import (
	"os"
	"path/filepath"
	"testing"

	gestures "github.com/ThatOtherAndrew/Unistroke/internal/gesture"
	"github.com/ThatOtherAndrew/Unistroke/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSamples_Missing(t *testing.T) {
	samples, err := gestures.LoadSamples(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.NotNil(t, samples)
	assert.Empty(t, samples)
}

func TestLoadSamples_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err := gestures.LoadSamples(path)
	assert.Error(t, err)
}

func TestSaveSample_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "samples.json")
	a := models.Sample{Char: "a", Points: []models.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}}
	b := models.Sample{Char: "b", Points: []models.Point{{X: 1, Y: 1}}}

	require.NoError(t, gestures.SaveSample(path, a))
	require.NoError(t, gestures.SaveSample(path, b))

	got, err := gestures.LoadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Sample{a, b}, got)
}

func TestRecorder_DropsJitter(t *testing.T) {
	r := gestures.NewRecorder(2, 0)
	assert.True(t, r.AddPoint(10, 10))
	assert.False(t, r.AddPoint(11, 11))
	assert.False(t, r.AddPoint(12, 10))
	assert.True(t, r.AddPoint(12, 11))
	assert.True(t, r.AddPoint(12, 14))
	assert.Equal(t, []models.Point{{X: 10, Y: 10}, {X: 12, Y: 11}, {X: 12, Y: 14}}, r.Points())

	r.Reset()
	assert.Zero(t, r.Len())
	assert.True(t, r.AddPoint(12, 14))
}

func TestRecorder_KeepsNewest(t *testing.T) {
	r := gestures.NewRecorder(0, 3)
	for i := 0; i < 5; i++ {
		r.AddPoint(i, 0)
	}
	assert.Equal(t, []models.Point{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}, r.Points())
}

func TestRecorder_PointsIsCopy(t *testing.T) {
	r := gestures.NewRecorder(0, 0)
	r.AddPoint(1, 1)
	pts := r.Points()
	pts[0].X = 99
	assert.Equal(t, 1, r.Points()[0].X)
}

func TestClean(t *testing.T) {
	in := []models.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 1}, {X: 9, Y: 0}}
	assert.Equal(t, []models.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 9, Y: 0}}, gestures.Clean(in, 2, 0))
	assert.Equal(t, []models.Point{{X: 5, Y: 0}, {X: 9, Y: 0}}, gestures.Clean(in, 2, 2))
	assert.Empty(t, gestures.Clean(nil, 2, 10))
}
