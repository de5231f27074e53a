package terminal

import (
	"io"
	"os"
)

// Sequences written by EmergencyReset
const (
	seqMouseOff     = "\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l"
	seqCursorShow   = "\x1b[?25h"
	seqAltScreenOff = "\x1b[?1049l"
	seqSGR0         = "\x1b[0m"
	seqAutoWrapOn   = "\x1b[?7h"
)

// EmergencyReset restores a sane terminal when the screen could not be finalized normally
// Best-effort for crash recovery; errors ignored
func EmergencyReset(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqCursorShow+seqAltScreenOff+seqSGR0+seqAutoWrapOn)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	resetTerminalMode()
}
