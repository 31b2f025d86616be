package render

import (
	"fmt"
	"strings"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/domain/grid"
)

const (
	filledCell = '#'
	emptyCell  = '.'
)

// Text renders the frame for a terminal: one line per grid row, then the clock.
func Text(f face.Frame, layout grid.Layout) string {
	var b strings.Builder

	for row := range layout.Rows {
		for col := range layout.Columns {
			if col > 0 {
				b.WriteByte(' ')
			}

			if layout.Filled(f.MinutesLeft, row, col) {
				b.WriteRune(filledCell)
			} else {
				b.WriteRune(emptyCell)
			}
		}

		b.WriteByte('\n')
	}

	_, _ = fmt.Fprintf(&b, "%s  (%d min left)\n", f.ClockText, f.MinutesLeft)

	return b.String()
}
