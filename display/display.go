package display

import (
	"fmt"
	"io"

	"exio-go/board"
)

// perRow is how many pins share one output line.
const perRow = 8

// VpinMap renders "vpin => physical(caps)" for every logical pin of b.
func VpinMap(w io.Writer, b *board.Board, firstVpin uint16) {
	fmt.Fprintf(w, "Vpin to physical pin mappings (Vpin => physical pin), board %s:\n", b.Name)
	for i, p := range b.Pins {
		sep := "  "
		if (i+1)%perRow == 0 || i == len(b.Pins)-1 {
			sep = "\n"
		}
		fmt.Fprintf(w, "%d => %d(%s)%s", int(firstVpin)+i, p.Physical, p.Caps, sep)
	}
}
