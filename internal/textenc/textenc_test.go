package textenc

import (
	"bytes"
	"testing"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"lf", []byte("a\nb\n")},
		{"crlf", []byte("a\r\nb\r\n")},
		{"bom lf", []byte("\xef\xbb\xbfa\nb\n")},
		{"bom crlf", []byte("\xef\xbb\xbfa\r\nb\r\n")},
		{"no trailing newline", []byte("a\nb")},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, layout, err := Decode(tc.raw)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			got := layout.Encode(text)
			if !bytes.Equal(got, tc.raw) {
				t.Fatalf("round trip got %q want %q", got, tc.raw)
			}
		})
	}
}

func TestDecodeLayout(t *testing.T) {
	text, layout, err := Decode([]byte("\xef\xbb\xbfa\r\nb\r\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if text != "a\nb\n" {
		t.Fatalf("text got %q", text)
	}
	if !layout.HadBOM || layout.LineEnding != CRLF || !layout.TrailingNewline || layout.FallbackDecoded {
		t.Fatalf("layout got %+v", layout)
	}
}

func TestDecodeWindows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a standalone UTF-8 byte.
	text, layout, err := Decode([]byte("Caf\xe9\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if text != "Café\n" {
		t.Fatalf("text got %q", text)
	}
	if !layout.FallbackDecoded {
		t.Fatalf("fallback not flagged: %+v", layout)
	}
	// Fallback files re-encode as UTF-8, not the original single-byte form.
	if got := layout.Encode(text); !bytes.Equal(got, []byte("Café\n")) {
		t.Fatalf("Encode got %q", got)
	}
}

func TestDecodeBareCarriageReturn(t *testing.T) {
	text, _, err := Decode([]byte("a\rb\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if text != "a\nb\n" {
		t.Fatalf("text got %q", text)
	}
}

func TestSplitJoinLines(t *testing.T) {
	lines := SplitLines("a\nb\n", true)
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("SplitLines got %q", lines)
	}
	if got := JoinLines(lines, true); got != "a\nb\n" {
		t.Fatalf("JoinLines got %q", got)
	}

	lines = SplitLines("a\nb", false)
	if len(lines) != 2 {
		t.Fatalf("SplitLines got %q", lines)
	}
	if got := JoinLines(lines, false); got != "a\nb" {
		t.Fatalf("JoinLines got %q", got)
	}

	if lines := SplitLines("", true); lines != nil {
		t.Fatalf("SplitLines empty got %q", lines)
	}
}
