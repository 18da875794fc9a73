package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadSettingsFrom_CreatesDefault(t *testing.T) {
	logs := captureLog(t)
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(path), s)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "alphabet.aucr"), s.AlphabetPath)
	assert.Contains(t, logs.String(), "Creating default settings file")

	// the created file reads back as the same settings
	again, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoadSettingsFrom_PartialFileKeepsDefaults(t *testing.T) {
	captureLog(t)
	path := write(t, `{"max_points": 512, "stroke_width": 2.5}`)

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 512, s.MaxPoints)
	assert.Equal(t, float32(2.5), s.StrokeWidth)
	assert.Equal(t, 240, s.RenderWidth)
	assert.Equal(t, 2, s.MinPointDistance)
}

func TestLoadSettingsFrom_UnknownKey(t *testing.T) {
	logs := captureLog(t)
	_, err := LoadSettingsFrom(write(t, `{"overlay_alpha": 0.5}`))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "unrecognised setting key 'overlay_alpha'")
}

func TestLoadSettingsFrom_Invalid(t *testing.T) {
	logs := captureLog(t)
	path := write(t, `{"alphabet_path": "", "min_point_distance": -1, "max_points": 1,
		"render_width": 0, "render_height": 99999, "render_border": 200, "stroke_width": -3}`)

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(path), s)
	for _, key := range []string{"alphabet_path", "min_point_distance", "max_points",
		"render_width", "render_height", "render_border", "stroke_width"} {
		assert.Contains(t, logs.String(), key)
	}
}

func TestLoadSettingsFrom_Malformed(t *testing.T) {
	logs := captureLog(t)
	path := write(t, `{"max_points": "many"}`)
	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(path), s)
	assert.Contains(t, logs.String(), "Invalid settings file")
}

func TestSettings_Rect(t *testing.T) {
	s := Default("settings.json")
	assert.Equal(t, alphabet.Rect{Width: 240, Height: 320, Border: 16}, s.Rect())
}

func TestGetKnownKeys(t *testing.T) {
	keys := getKnownKeys(&Settings{})
	assert.Len(t, keys, 7)
	assert.True(t, keys["render_border"])
	assert.False(t, keys["RenderBorder"])
}
