package chart

import "osz-builder/internal/textenc"

// Serialize reconstructs the document bytes: preamble, then each
// section header followed by its body lines, in original order and in
// the original line-ending convention. Untouched key-value items and
// all opaque lines re-emit their original text, so an unmutated
// Document reproduces its input exactly.
func Serialize(d *Document) []byte {
	var lines []string
	lines = append(lines, d.preamble...)
	for _, s := range d.sections {
		lines = append(lines, s.header)
		for _, it := range s.items {
			lines = append(lines, it.line())
		}
	}
	return d.layout.Encode(textenc.JoinLines(lines, d.layout.TrailingNewline))
}
