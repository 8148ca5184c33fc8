package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/aabizri/gemoturtle/turtle"
)

// Text lists segments in turtle coordinates, one per line: index depth x1 y1 x2 y2
type Text struct{}

func (Text) Render(w io.Writer, segments []turtle.Segment) error {
	bw := bufio.NewWriter(w)
	for _, seg := range segments {
		fmt.Fprintf(bw, "%d %d %g %g %g %g\n", seg.Index, seg.Depth, seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y)
	}
	return errors.Wrap(bw.Flush(), "writing segments")
}
