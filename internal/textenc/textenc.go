// Package textenc handles the byte-level text concerns of chart files:
// byte-order marks, line-ending conventions, and character encoding.
//
// Chart files in the wild are usually UTF-8 with CRLF endings, but old
// editors produced single-byte encodings and bare LF files. Decode keeps
// enough information (BOM presence, ending convention) for Encode to
// reproduce the original byte layout of an untouched document.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Line-ending conventions. CRLF is the historical default for chart
// files; LF shows up in files touched by unix tooling.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Layout describes the byte-level shape of a decoded file so that it
// can be restored on encode.
type Layout struct {
	// HadBOM is true when the input started with a UTF-8 byte-order mark.
	HadBOM bool

	// LineEnding is the detected convention, CRLF or LF.
	LineEnding string

	// TrailingNewline is true when the input ended with a line ending.
	TrailingNewline bool

	// FallbackDecoded is true when the input was not valid UTF-8 and was
	// decoded as Windows-1252 instead. Such files re-encode as UTF-8.
	FallbackDecoded bool
}

// Decode converts raw file bytes into text with LF endings and returns
// the layout needed to restore the original convention. Invalid UTF-8
// input is decoded as Windows-1252, which cannot fail: every byte
// sequence is a valid single-byte string.
func Decode(raw []byte) (string, Layout, error) {
	var layout Layout

	if bytes.HasPrefix(raw, utf8BOM) {
		layout.HadBOM = true
		raw = raw[len(utf8BOM):]
	}

	if bytes.Contains(raw, []byte(CRLF)) {
		layout.LineEnding = CRLF
	} else {
		layout.LineEnding = LF
	}

	text := string(raw)
	if !utf8.Valid(raw) {
		decoded, err := charmap.Windows1252.NewDecoder().String(text)
		if err != nil {
			return "", layout, err
		}
		text = decoded
		layout.FallbackDecoded = true
	}

	text = strings.ReplaceAll(text, CRLF, LF)
	text = strings.ReplaceAll(text, "\r", LF)
	layout.TrailingNewline = strings.HasSuffix(text, LF)

	return text, layout, nil
}

// Encode converts LF-normalized text back to bytes in the layout's
// original convention. Fallback-decoded files come out as UTF-8; that
// is the one permitted normalization besides line endings.
func (l Layout) Encode(text string) []byte {
	if l.LineEnding == CRLF {
		text = strings.ReplaceAll(text, LF, CRLF)
	}
	var out []byte
	if l.HadBOM {
		out = append(out, utf8BOM...)
	}
	return append(out, text...)
}

// SplitLines splits LF-normalized text into lines, dropping the empty
// tail element produced by a trailing newline.
func SplitLines(text string, trailingNewline bool) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, LF)
	if trailingNewline && len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines for LF-normalized text.
func JoinLines(lines []string, trailingNewline bool) string {
	joined := strings.Join(lines, LF)
	if trailingNewline && joined != "" {
		joined += LF
	}
	return joined
}
