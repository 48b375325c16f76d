package tuitest

import (
	"bytes"
	"testing"
)

func TestResponderAnswersSplitQueries(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("hello \x1b]11"))
	tr.Process([]byte(";?\x07 and \x1b[6n"))
	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if out.String() != want {
		t.Fatalf("replies = %q, want %q", out.String(), want)
	}
	tr.Process([]byte("\x1b[6n"))
	if got := bytes.Count(out.Bytes(), []byte("R")); got != 2 {
		t.Fatalf("expected one more cursor report, got %d total", got)
	}
}

func TestResponderBoundsBuffer(t *testing.T) {
	tr := newTerminalResponder(&bytes.Buffer{})
	tr.Process(bytes.Repeat([]byte("x"), 1000))
	if len(tr.buf) > responderMax {
		t.Fatalf("buffer grew to %d bytes", len(tr.buf))
	}
}

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[Hfirst  \r\nscreen\x1b[2J\x1b[H\x1b[1mLock\x1b[0m and Dam\r\n\r\n")
	rec := &Recording{Frames: parseFrames(raw)}
	if len(rec.Frames) != 2 {
		t.Fatalf("parsed %d frames", len(rec.Frames))
	}
	if rec.Frames[0].Plain != "first\nscreen" {
		t.Fatalf("first frame = %q", rec.Frames[0].Plain)
	}
	last, ok := rec.FinalFrame()
	if !ok || last.Plain != "Lock and Dam" {
		t.Fatalf("final frame = %q", last.Plain)
	}
	if f, ok := rec.FirstContaining("screen"); !ok || f.Index != 0 {
		t.Fatalf("FirstContaining = %+v, %v", f, ok)
	}
	if _, ok := rec.FirstContaining("river"); ok {
		t.Fatal("FirstContaining matched missing text")
	}
}

func TestStripANSI(t *testing.T) {
	in := "\x1b]0;title\x07\x1b[38;2;1;2;3mdam\x1b[0m\x1b[<0;3;4M"
	if got := StripANSI(in); got != "dam" {
		t.Fatalf("StripANSI = %q", got)
	}
}

func TestMouseEncoding(t *testing.T) {
	if got := string(Click(0, 0)); got != "\x1b[<0;1;1M\x1b[<0;1;1m" {
		t.Fatalf("Click = %q", got)
	}
	if got := string(Wheel(9, 4, true)); got != "\x1b[<65;10;5M" {
		t.Fatalf("Wheel = %q", got)
	}
}

func TestEmptyRecording(t *testing.T) {
	var rec *Recording
	if _, ok := rec.FinalFrame(); ok {
		t.Fatal("nil recording has no frames")
	}
	if lines := (Frame{}).Lines(); lines != nil {
		t.Fatalf("Lines = %v", lines)
	}
}
