package asset

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProbeBackground(t *testing.T) {
	b := NewBundle()
	bg := b.SetBackground("bg.png", pngBytes(t, 640, 480))
	w, h, warnings := ProbeBackground(bg)
	if w != 640 || h != 480 {
		t.Fatalf("dimensions got %dx%d", w, h)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestProbeBackgroundTiny(t *testing.T) {
	b := NewBundle()
	bg := b.SetBackground("tiny.png", pngBytes(t, 32, 32))
	_, _, warnings := ProbeBackground(bg)
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "32x32") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestProbeBackgroundUndecodable(t *testing.T) {
	b := NewBundle()
	bg := b.SetBackground("bad.jpg", []byte("not an image"))
	w, h, warnings := ProbeBackground(bg)
	if w != 0 || h != 0 {
		t.Fatalf("dimensions got %dx%d", w, h)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "does not decode") {
		t.Fatalf("warnings = %v", warnings)
	}
}
