package tuitest

import "fmt"

var (
	KeyEnter = []byte{'\r'}
	KeyCtrlC = []byte{3}
	KeyEsc   = []byte{27}
	KeyTab   = []byte{'\t'}
	KeyUp    = []byte("\x1b[A")
	KeyDown  = []byte("\x1b[B")
	KeyPgDn  = []byte("\x1b[6~")
)

// Click encodes a left-button press and release at the zero-based cell
// (x, y) as SGR mouse reports.
func Click(x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[<0;%d;%dM\x1b[<0;%d;%dm", x+1, y+1, x+1, y+1))
}

// Wheel encodes one wheel notch at (x, y); down scrolls toward the end.
func Wheel(x, y int, down bool) []byte {
	button := 64
	if down {
		button = 65
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%dM", button, x+1, y+1))
}
