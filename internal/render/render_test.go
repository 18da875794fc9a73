package render_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/ThatOtherAndrew/Unistroke/internal/render"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func horizontal(t *testing.T) *stroke.InterpolatedCharacter {
	t.Helper()
	ic, err := stroke.FromRaw('-', 8, []stroke.Coordinate{{X: 16, Y: 160}, {X: 224, Y: 160}})
	require.NoError(t, err)
	return ic
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRender_Stroke(t *testing.T) {
	img, err := render.Render(horizontal(t), render.Options{Width: 240, Height: 320, StrokeWidth: 6})
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())

	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, img.RGBAAt(120, 160))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, img.RGBAAt(16, 160))
	assert.True(t, isWhite(img.At(120, 150)))
	assert.True(t, isWhite(img.At(5, 5)))
	assert.True(t, isWhite(img.At(235, 160)))
}

func TestRender_Label(t *testing.T) {
	opts := render.Options{Width: 240, Height: 320, StrokeWidth: 6}
	plain, err := render.Render(horizontal(t), opts)
	require.NoError(t, err)
	opts.Label = "U+002D"
	labelled, err := render.Render(horizontal(t), opts)
	require.NoError(t, err)

	inked := 0
	for y := 300; y < 320; y++ {
		for x := 0; x < 60; x++ {
			assert.True(t, isWhite(plain.At(x, y)))
			if !isWhite(labelled.At(x, y)) {
				inked++
			}
		}
	}
	assert.Positive(t, inked)
}

func TestRender_Scale(t *testing.T) {
	img, err := render.Render(horizontal(t), render.Options{Width: 240, Height: 320, StrokeWidth: 6, Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, img.RGBAAt(240, 320))
}

func TestRender_Ink(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	img, err := render.Render(horizontal(t), render.Options{Width: 240, Height: 320, StrokeWidth: 6, Ink: red})
	require.NoError(t, err)
	assert.Equal(t, red, img.RGBAAt(100, 160))
}

func TestRender_Errors(t *testing.T) {
	_, err := render.Render(nil, render.Options{Width: 10, Height: 10})
	assert.ErrorIs(t, err, render.ErrEmptyStroke)

	_, err = render.Render(horizontal(t), render.Options{Width: 0, Height: 10})
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	ic, err := stroke.FromRaw('-', 4, []stroke.Coordinate{{X: 5, Y: 15}, {X: 35, Y: 15}})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, render.WritePNG(&buf, ic, render.Options{Width: 40, Height: 30, StrokeWidth: 2}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}
