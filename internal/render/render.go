// Package render rasterizes interpolated strokes into images.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type Options struct {
	Width, Height int
	StrokeWidth   float32
	// Label is printed in the bottom-left corner when non-empty.
	Label string
	// Ink defaults to black.
	Ink color.Color
	// Scale enlarges the finished image by an integer factor.
	Scale int
}

var ErrEmptyStroke = errors.New("render: empty stroke")

const joinSides = 8

func Render(ic *stroke.InterpolatedCharacter, opts Options) (*image.RGBA, error) {
	if ic == nil || len(ic.Coordinates) == 0 {
		return nil, ErrEmptyStroke
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("render: image size must be positive")
	}
	ink := opts.Ink
	if ink == nil {
		ink = color.Black
	}
	half := opts.StrokeWidth / 2
	if half <= 0 {
		half = 0.5
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(opts.Width, opts.Height)
	pts := ic.Coordinates
	for i := range pts {
		x, y := float32(pts[i].X), float32(pts[i].Y)
		addJoin(z, x, y, half)
		if i == len(pts)-1 {
			continue
		}
		dx := float32(pts[i+1].X) - x
		dy := float32(pts[i+1].Y) - y
		length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if length == 0 {
			continue
		}
		perpX := -dy / length * half
		perpY := dx / length * half

		z.MoveTo(x+perpX, y+perpY)
		z.LineTo(x+dx+perpX, y+dy+perpY)
		z.LineTo(x+dx-perpX, y+dy-perpY)
		z.LineTo(x-perpX, y-perpY)
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(ink), image.Point{})

	if opts.Label != "" {
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(ink),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, opts.Height-3),
		}
		d.DrawString(opts.Label)
	}

	if opts.Scale > 1 {
		big := image.NewRGBA(image.Rect(0, 0, opts.Width*opts.Scale, opts.Height*opts.Scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), dst, dst.Bounds(), draw.Src, nil)
		dst = big
	}
	return dst, nil
}

// addJoin fills a polygon around a stroke point. It winds the same way as
// the segment quads so overlapping coverage adds up instead of cancelling.
func addJoin(z *vector.Rasterizer, x, y, r float32) {
	for k := 0; k < joinSides; k++ {
		a := -2 * math.Pi * float64(k) / joinSides
		px := x + r*float32(math.Cos(a))
		py := y + r*float32(math.Sin(a))
		if k == 0 {
			z.MoveTo(px, py)
		} else {
			z.LineTo(px, py)
		}
	}
	z.ClosePath()
}

func WritePNG(w io.Writer, ic *stroke.InterpolatedCharacter, opts Options) error {
	img, err := Render(ic, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
