package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	gestures "github.com/ThatOtherAndrew/Unistroke/internal/gesture"
	"github.com/ThatOtherAndrew/Unistroke/internal/models"
	"github.com/ThatOtherAndrew/Unistroke/pkg/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return dir, filepath.Join(dir, "test.aucr")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	alphabetPath, verbose = "", false
	forceNew, removeChar = false, ""
	showOutput, showJSON, showScale = "", "", 1

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSamples(t *testing.T, dir, name string, samples []models.Sample) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data, err := json.Marshal(samples)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func sample(char string, pts ...models.Point) models.Sample {
	return models.Sample{Char: char, Points: pts}
}

var training = []models.Sample{
	sample("-", models.Point{X: 0, Y: 0}, models.Point{X: 6400, Y: 0}),
	sample("|", models.Point{X: 0, Y: 6400}, models.Point{X: 0, Y: 0}),
	sample("L", models.Point{X: 0, Y: 6400}, models.Point{X: 0, Y: 0}, models.Point{X: 4000, Y: 0}),
	sample("too long", models.Point{X: 0, Y: 0}, models.Point{X: 10, Y: 0}),
	sample("", models.Point{X: 0, Y: 0}, models.Point{X: 10, Y: 0}),
}

func trainedAlphabet(t *testing.T) (dir, path string) {
	t.Helper()
	dir, path = setup(t)
	_, err := run(t, "new", "--alphabet", path)
	require.NoError(t, err)
	out, err := run(t, "train", "--alphabet", path, writeSamples(t, dir, "train.json", training))
	require.NoError(t, err)
	require.Contains(t, out, "Trained 3 character(s), alphabet now holds 3")
	return dir, path
}

func TestNew(t *testing.T) {
	_, path := setup(t)

	out, err := run(t, "new", "--alphabet", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created alphabet: "+path)

	a, err := alphabet.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 64, a.Segments())
	assert.Equal(t, 7, a.RegionCount())

	_, err = run(t, "new", "--alphabet", path)
	assert.ErrorContains(t, err, "--force")

	_, err = run(t, "new", "--alphabet", path, "--force")
	assert.NoError(t, err)
}

func TestNew_DefaultPathFromSettings(t *testing.T) {
	dir, _ := setup(t)
	_, err := run(t, "new")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".config", "unistroke", "alphabet.aucr"))
	assert.FileExists(t, filepath.Join(dir, ".config", "unistroke", "settings.json"))
}

func TestMissingAlphabet(t *testing.T) {
	_, path := setup(t)
	_, err := run(t, "list", "--alphabet", path)
	assert.ErrorContains(t, err, "unistroke new")
}

func TestTrainAndList(t *testing.T) {
	_, path := trainedAlphabet(t)

	out, err := run(t, "list", "--alphabet", path)
	require.NoError(t, err)
	assert.Contains(t, out, "64 segments, 7 regions")
	assert.Contains(t, out, "U+002D  HYPHEN-MINUS")
	assert.Contains(t, out, "U+007C  VERTICAL LINE")
	assert.Contains(t, out, "U+004C  LATIN CAPITAL LETTER L")
}

func TestList_Empty(t *testing.T) {
	_, path := setup(t)
	_, err := run(t, "new", "--alphabet", path)
	require.NoError(t, err)
	out, err := run(t, "list", "--alphabet", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No characters trained")
}

func TestRecognize(t *testing.T) {
	dir, path := trainedAlphabet(t)
	samples := writeSamples(t, dir, "unknown.json", []models.Sample{
		sample("-", models.Point{X: 0, Y: 0}, models.Point{X: 3200, Y: 40}, models.Point{X: 6400, Y: 0}),
		sample("|", models.Point{X: 0, Y: 6400}, models.Point{X: 30, Y: 3000}, models.Point{X: 0, Y: 0}),
		sample("", models.Point{X: 10, Y: 6000}, models.Point{X: 0, Y: 3000}, models.Point{X: 20, Y: 0}, models.Point{X: 3800, Y: 30}),
	})

	out, err := run(t, "recognize", "--alphabet", path, samples)
	require.NoError(t, err)
	assert.Contains(t, out, "0: -  U+002D  HYPHEN-MINUS  distance 0")
	assert.Contains(t, out, "1: |  U+007C  VERTICAL LINE")
	assert.Contains(t, out, "2: L  U+004C")
	assert.Contains(t, out, "2/2 correct")
	assert.NotContains(t, out, "expected")
}

func TestRemove(t *testing.T) {
	_, path := trainedAlphabet(t)

	out, err := run(t, "remove", "--alphabet", path, "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed character: -")

	// 'L' took slot 0
	out, err = run(t, "remove", "--alphabet", path, "--char", "L")
	require.NoError(t, err)
	assert.Contains(t, out, "LATIN CAPITAL LETTER L")

	a, err := alphabet.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, a.Len())
	assert.Equal(t, []int{0}, a.Find('|'))

	_, err = run(t, "remove", "--alphabet", path, "5")
	assert.Error(t, err)
	_, err = run(t, "remove", "--alphabet", path, "--char", "x")
	assert.ErrorContains(t, err, "not found")
	_, err = run(t, "remove", "--alphabet", path)
	assert.Error(t, err)
	_, err = run(t, "remove", "--alphabet", path, "0", "--char", "|")
	assert.Error(t, err)
}

func TestRemove_AllEntriesOfChar(t *testing.T) {
	dir, path := trainedAlphabet(t)
	_, err := run(t, "train", "--alphabet", path, writeSamples(t, dir, "more.json", training[:2]))
	require.NoError(t, err)

	_, err = run(t, "remove", "--alphabet", path, "--char", "-")
	require.NoError(t, err)

	a, err := alphabet.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Empty(t, a.Find('-'))
	assert.Len(t, a.Find('|'), 2)
}

func TestShow(t *testing.T) {
	dir, path := trainedAlphabet(t)
	img := filepath.Join(dir, "out.png")
	samples := filepath.Join(dir, "shown.json")

	out, err := run(t, "show", "--alphabet", path, "0", "-o", img, "--json", samples)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote image")

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 240, decoded.Bounds().Dx())
	assert.Equal(t, 320, decoded.Bounds().Dy())

	got, err := gestures.LoadSamples(samples)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "-", got[0].Char)
	assert.Len(t, got[0].Points, 65)
	assert.Equal(t, models.Point{X: 16, Y: 160}, got[0].Points[0])
	assert.Equal(t, models.Point{X: 224, Y: 160}, got[0].Points[64])

	// the reconstruction is recognized as what it was drawn from
	out, err = run(t, "recognize", "--alphabet", path, samples)
	require.NoError(t, err)
	assert.Contains(t, out, "1/1 correct")
}

func TestShow_Errors(t *testing.T) {
	dir, path := trainedAlphabet(t)
	_, err := run(t, "show", "--alphabet", path, "0")
	assert.ErrorContains(t, err, "nothing to do")
	_, err = run(t, "show", "--alphabet", path, "9", "-o", filepath.Join(dir, "x.png"))
	assert.Error(t, err)
	_, err = run(t, "show", "--alphabet", path, "zero", "-o", filepath.Join(dir, "x.png"))
	assert.ErrorContains(t, err, "invalid index")
}

func TestEvaluate(t *testing.T) {
	_, path := trainedAlphabet(t)
	out, err := run(t, "evaluate", "--alphabet", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Accuracy: 0/3 (0.0%)")
	assert.Contains(t, out, "recognized as")
	assert.Contains(t, out, "Confusion")
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "unistroke")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}
