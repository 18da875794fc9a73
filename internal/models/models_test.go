package models_test

import (
	"encoding/json"
	"testing"

	"github.com/ThatOtherAndrew/Unistroke/internal/models"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_JSON(t *testing.T) {
	var got []models.Sample
	require.NoError(t, json.Unmarshal([]byte(`[{"char":"a","points":[{"x":1,"y":2},{"x":3,"y":-4}]},{"points":[]}]`), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Char)
	assert.Equal(t, []stroke.Coordinate{{X: 1, Y: 2}, {X: 3, Y: -4}}, got[0].Coordinates())
	assert.Empty(t, got[1].Char)

	data, err := json.Marshal(got[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"points":[]}`, string(data))
}

func TestFromCoordinates(t *testing.T) {
	coords := []stroke.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 20}}
	s := models.FromCoordinates("z", coords)
	assert.Equal(t, "z", s.Char)
	assert.Equal(t, []models.Point{{0, 0}, {10, 20}}, s.Points)
	assert.Equal(t, coords, s.Coordinates())
}
