package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"

	"github.com/pkg/errors"

	"github.com/aabizri/gemoturtle/turtle"
)

// SVG writes one <line> per segment
type SVG struct {
	Width, Height int
	Margin        float64
	Style         Style
}

func hexColor(c color.NRGBA) (string, float64) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 0xff
}

func (s SVG) Render(w io.Writer, segments []turtle.Segment) error {
	bw := bufio.NewWriter(w)
	vp := Fit(Bounds(segments), float64(s.Width), float64(s.Height), s.Margin)

	bg, bgOpacity := hexColor(s.Style.Background)
	stroke, opacity := hexColor(s.Style.Color)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s" fill-opacity="%.3g"/>`+"\n", bg, bgOpacity)
	fmt.Fprintf(bw, `<g stroke="%s" stroke-opacity="%.3g" stroke-linecap="round">`+"\n", stroke, opacity)
	for _, seg := range segments {
		x1, y1 := vp.Apply(seg.Start)
		x2, y2 := vp.Apply(seg.End)
		fmt.Fprintf(bw, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="%.3g"/>`+"\n",
			x1, y1, x2, y2, s.Style.Width(seg))
	}
	fmt.Fprint(bw, "</g>\n</svg>\n")

	return errors.Wrap(bw.Flush(), "writing svg")
}
