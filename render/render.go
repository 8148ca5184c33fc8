// Package render draws turtle segments. It is the only place that knows about images.
package render

import (
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aabizri/gemoturtle/turtle"
)

type Renderer interface {
	Render(w io.Writer, segments []turtle.Segment) error
}

// Style holds the optional attributes of a drawing
type Style struct {
	LineWidth float64
	// Thinning multiplies the line width once per branch depth; 0 means 1
	Thinning   float64
	Color      color.NRGBA
	Background color.NRGBA
}

func DefaultStyle() Style {
	return Style{
		LineWidth:  1,
		Thinning:   1,
		Color:      color.NRGBA{A: 0xcc},
		Background: color.NRGBA{0xff, 0xff, 0xff, 0xff},
	}
}

// Width is the stroke width of seg
func (s Style) Width(seg turtle.Segment) float64 {
	if s.Thinning == 0 || s.Thinning == 1 {
		return s.LineWidth
	}
	return s.LineWidth * math.Pow(s.Thinning, float64(seg.Depth))
}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, errors.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type Rect struct {
	Min, Max turtle.Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Bounds is the smallest rectangle holding every endpoint
func Bounds(segments []turtle.Segment) Rect {
	if len(segments) == 0 {
		return Rect{}
	}
	r := Rect{Min: segments[0].Start, Max: segments[0].Start}
	for _, seg := range segments {
		for _, p := range [2]turtle.Point{seg.Start, seg.End} {
			r.Min.X = math.Min(r.Min.X, p.X)
			r.Min.Y = math.Min(r.Min.Y, p.Y)
			r.Max.X = math.Max(r.Max.X, p.X)
			r.Max.Y = math.Max(r.Max.Y, p.Y)
		}
	}
	return r
}

// Viewport maps turtle coordinates (Y up) onto a canvas (Y down), keeping proportions
type Viewport struct {
	scale            float64
	offsetX, offsetY float64
	height           float64
}

// Fit centers bounds in a width x height canvas with margin on every side
func Fit(bounds Rect, width, height, margin float64) Viewport {
	availW, availH := width-2*margin, height-2*margin

	s := math.Inf(1)
	if bounds.Width() > 0 {
		s = availW / bounds.Width()
	}
	if bounds.Height() > 0 {
		s = math.Min(s, availH/bounds.Height())
	}
	if math.IsInf(s, 1) {
		s = 1
	}

	return Viewport{
		scale:   s,
		offsetX: margin + (availW-bounds.Width()*s)/2 - bounds.Min.X*s,
		offsetY: margin + (availH-bounds.Height()*s)/2 - bounds.Min.Y*s,
		height:  height,
	}
}

func (v Viewport) Apply(p turtle.Point) (x, y float64) {
	return p.X*v.scale + v.offsetX, v.height - (p.Y*v.scale + v.offsetY)
}
