package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries lists the capability probes lipgloss and Bubble Tea send
// at startup, with the answer a dark xterm would give. Without answers the
// program stalls until its query timeout.
var terminalQueries = []struct {
	query, reply string
}{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

const (
	responderKeep = 64
	responderMax  = 256
)

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 2*responderMax)}
}

// Process answers every query found in chunk, including ones split across
// reads.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	if len(tr.buf) > responderMax {
		tr.buf = append(tr.buf[:0], tr.buf[len(tr.buf)-responderKeep:]...)
	}
}

// answerNext replies to the earliest pending query and drops the buffer up to
// its end.
func (tr *terminalResponder) answerNext() bool {
	first, end := -1, 0
	reply := ""
	for _, q := range terminalQueries {
		idx := bytes.Index(tr.buf, []byte(q.query))
		if idx >= 0 && (first < 0 || idx < first) {
			first, end, reply = idx, idx+len(q.query), q.reply
		}
	}
	if first < 0 {
		return false
	}
	tr.buf = tr.buf[end:]
	_, _ = io.WriteString(tr.w, reply)
	return true
}
