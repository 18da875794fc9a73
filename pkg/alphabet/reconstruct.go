package alphabet

import (
	"github.com/ThatOtherAndrew/Unistroke/pkg/fixed"
	"github.com/ThatOtherAndrew/Unistroke/pkg/status"
	"github.com/ThatOtherAndrew/Unistroke/pkg/stroke"
)

// MaxRect bounds each side of a reconstruction rectangle.
const MaxRect = 1 << 15

// Rect is the target area of a reconstruction. No point comes closer than
// Border to an edge.
type Rect struct {
	Width, Height, Border int
}

func (r Rect) validate() error {
	if r.Width <= 0 || r.Height <= 0 || r.Border < 0 {
		return status.Failf("alphabet: rectangle %dx%d border %d", r.Width, r.Height, r.Border)
	}
	if r.Width > MaxRect || r.Height > MaxRect {
		return status.Failf("alphabet: rectangle %dx%d exceeds %d", r.Width, r.Height, MaxRect)
	}
	if r.Width-2*r.Border <= 0 || r.Height-2*r.Border <= 0 {
		return status.Failf("alphabet: border %d leaves no room in %dx%d", r.Border, r.Width, r.Height)
	}
	return nil
}

// Reconstruct draws c back into a stroke that fits r, for display. Each
// segment steps along the bisector of its code's sector, so the result
// shows the shape of the character, not the stroke it was trained from.
// The path keeps its aspect ratio and is centred along the looser axis.
func (a *Alphabet) Reconstruct(c Character, r Rect) (*stroke.InterpolatedCharacter, error) {
	if err := a.usable(); err != nil {
		return nil, err
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := a.checkShape(c); err != nil {
		return nil, err
	}
	cp := c.CodePoint
	if cp == 0 {
		cp = unknownCodePoint
	}
	ic, err := stroke.NewInterpolated(cp, a.segments)
	if err != nil {
		return nil, err
	}
	ic.CodePoint = c.CodePoint

	n := a.codeMap.Len()
	pts := ic.Coordinates
	var xmin, ymin, xmax, ymax int
	for i, code := range c.Codes {
		x0, y0, _ := a.codeMap.Vector(code)
		x1, y1, _ := a.codeMap.Vector((code + 1) % n)
		sx, sy := x0+x1, y0+y1
		div := fixed.Sqrt(sx*sx + sy*sy)
		p := stroke.Coordinate{
			X: pts[i].X + fixed.RoundingDivide(sx*fixed.Scale, div),
			Y: pts[i].Y + fixed.RoundingDivide(sy*fixed.Scale, div),
		}
		pts[i+1] = p
		xmin, xmax = min(xmin, p.X), max(xmax, p.X)
		ymin, ymax = min(ymin, p.Y), max(ymax, p.Y)
	}

	innerW := r.Width - 2*r.Border
	innerH := r.Height - 2*r.Border
	magnify := func(k int) {
		xmin, xmax, ymin, ymax = xmin*k, xmax*k, ymin*k, ymax*k
		for i := range pts {
			pts[i].X *= k
			pts[i].Y *= k
		}
	}

	var scale, div, xoff, yoff int
	if (ymax-ymin)*r.Width > (xmax-xmin)*r.Height {
		if ymax-ymin < 10*innerH {
			magnify(fixed.RoundingDivide(20*innerH, ymax-ymin))
		}
		scale, div = innerH, ymax-ymin
		yoff = r.Border - fixed.RoundingDivide(ymin*scale, div)
		xoff = r.Border - fixed.RoundingDivide(xmin*scale, div) +
			fixed.RoundingDivide(innerW-fixed.RoundingDivide((xmax-xmin)*scale, div), 2)
	} else {
		if xmax-xmin < 10*innerW {
			magnify(fixed.RoundingDivide(20*innerW, xmax-xmin))
		}
		scale, div = innerW, xmax-xmin
		xoff = r.Border - fixed.RoundingDivide(xmin*scale, div)
		yoff = r.Border - fixed.RoundingDivide(ymin*scale, div) +
			fixed.RoundingDivide(innerH-fixed.RoundingDivide((ymax-ymin)*scale, div), 2)
	}
	for i := range pts {
		pts[i].X = xoff + fixed.RoundingDivide(pts[i].X*scale, div)
		pts[i].Y = yoff + fixed.RoundingDivide(pts[i].Y*scale, div)
	}
	return ic, nil
}

// ReconstructAt reconstructs stored character i.
func (a *Alphabet) ReconstructAt(i int, r Rect) (*stroke.InterpolatedCharacter, error) {
	if err := a.usable(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(a.chars) {
		return nil, status.Failf("alphabet: character %d out of range", i)
	}
	return a.Reconstruct(a.chars[i], r)
}
