package render

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/aabizri/gemoturtle/turtle"
)

// PNG rasterizes segments
type PNG struct {
	Width, Height int
	Margin        float64
	Style         Style
}

func (p PNG) Render(w io.Writer, segments []turtle.Segment) error {
	dc := gg.NewContext(p.Width, p.Height)
	dc.SetColor(p.Style.Background)
	dc.Clear()

	vp := Fit(Bounds(segments), float64(p.Width), float64(p.Height), p.Margin)
	dc.SetColor(p.Style.Color)
	dc.SetLineCapRound()
	for _, seg := range segments {
		x1, y1 := vp.Apply(seg.Start)
		x2, y2 := vp.Apply(seg.End)
		dc.SetLineWidth(p.Style.Width(seg))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	return errors.Wrap(dc.EncodePNG(w), "encoding png")
}
