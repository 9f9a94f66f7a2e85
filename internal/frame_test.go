package internal

import (
	"strings"
	"testing"
)

func TestClipFrame_FrameShorterThanTerminal(t *testing.T) {
	frame := "header\nline one\nline two\n"

	clipped := clipFrame(frame, 10)

	if clipped != frame {
		t.Errorf("expected frame unchanged, got %q", clipped)
	}
}

func TestClipFrame_FrameExactlyTerminalHeight(t *testing.T) {
	// "a\nb\nc\n" splits into four segments, the last one empty.
	frame := "a\nb\nc\n"

	clipped := clipFrame(frame, 4)

	if clipped != frame {
		t.Errorf("expected frame unchanged at exact height, got %q", clipped)
	}
}

func TestClipFrame_FrameOneLineOverTerminalHeight(t *testing.T) {
	frame := "header\nline one\nline two\nline three\n"

	clipped := clipFrame(frame, 3)

	expected := "header\nline one\nline two\n"
	if clipped != expected {
		t.Errorf("expected %q, got %q", expected, clipped)
	}

	if !strings.HasSuffix(clipped, "\n") {
		t.Errorf("expected clipped frame to keep a trailing newline, got %q", clipped)
	}
}

func TestClipFrame_KeepsTheHeaderWhenTailIsLong(t *testing.T) {
	frame := "header\n" + strings.Repeat("log line\n", 50)

	clipped := clipFrame(frame, 5)

	lines := strings.Split(strings.TrimSuffix(clipped, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "header" {
		t.Errorf("expected the header to survive clipping, got %q", lines[0])
	}
}
