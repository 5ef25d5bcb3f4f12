package chart

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"osz-builder/internal/textenc"
)

// FormatError reports input with no recognizable structure. Malformed
// lines inside an otherwise recognizable file are warnings, not errors.
type FormatError struct {
	Document string
	Message  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("chart %s: %s", e.Document, e.Message)
}

// backgroundRE matches the background declaration event: event type 0,
// start time 0, quoted filename, then optional offsets. Storyboard
// commands, breaks, and video lines do not match.
var backgroundRE = regexp.MustCompile(`^0,0,"([^"]+)"`)

// ParseBackgroundLine extracts the filename from a background
// declaration event line.
func ParseBackgroundLine(line string) (string, bool) {
	m := backgroundRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FormatBackgroundLine renders a background declaration for the given
// filename with zeroed offsets.
func FormatBackgroundLine(name string) string {
	return `0,0,"` + name + `",0,0`
}

// structuredSection reports whether a section is parsed as key-value.
// Every other section is opaque pass-through.
func structuredSection(name string) bool {
	switch {
	case strings.EqualFold(name, SectionGeneral),
		strings.EqualFold(name, SectionEditor),
		strings.EqualFold(name, SectionMetadata),
		strings.EqualFold(name, SectionDifficulty):
		return true
	}
	return false
}

// atoiStrict parses a base-10 integer with no trailing garbage.
func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// sectionHeader extracts the name from a "[Name]" line. Headers may
// carry surrounding whitespace; anything after the closing bracket
// disqualifies the line.
func sectionHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	name := trimmed[1 : len(trimmed)-1]
	if name == "" || strings.ContainsAny(name, "[]") {
		return "", false
	}
	return name, true
}

// Parse decodes raw bytes into a Document. The name identifies the
// document in warnings and errors. Parse fails only when no section
// header is found anywhere; every malformed line inside a recognized
// file is preserved verbatim and reported as a warning.
func Parse(name string, raw []byte) (*Document, []Warning, error) {
	text, layout, err := textenc.Decode(raw)
	if err != nil {
		return nil, nil, &FormatError{Document: name, Message: err.Error()}
	}

	var warnings []Warning
	if layout.FallbackDecoded {
		warnings = append(warnings, Warning{
			Stage:   "parse",
			Entity:  name,
			Message: "not valid UTF-8, decoded as Windows-1252",
		})
	}

	doc := &Document{Name: name, layout: layout}
	lines := textenc.SplitLines(text, layout.TrailingNewline)

	var current *Section
	for lineNo, line := range lines {
		if sectionName, ok := sectionHeader(line); ok {
			current = &Section{
				name:       sectionName,
				header:     line,
				structured: structuredSection(sectionName),
			}
			doc.sections = append(doc.sections, current)
			continue
		}
		if current == nil {
			doc.preamble = append(doc.preamble, line)
			continue
		}
		current.items = append(current.items, parseItem(current, line, name, lineNo+1, &warnings))
	}

	if len(doc.sections) == 0 {
		return nil, warnings, &FormatError{Document: name, Message: "no section header found"}
	}
	return doc, warnings, nil
}

// parseItem classifies one body line. In structured sections a line
// splits on its first colon into a key-value item; blank lines,
// comments, and lines without a colon stay opaque.
func parseItem(section *Section, line, docName string, lineNo int, warnings *[]Warning) *item {
	if !section.structured {
		return &item{kind: itemOpaque, raw: line}
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") {
		return &item{kind: itemOpaque, raw: line}
	}
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		*warnings = append(*warnings, Warning{
			Stage:   "parse",
			Entity:  docName,
			Message: fmt.Sprintf("line %d in [%s] has no separator, kept verbatim", lineNo, section.name),
		})
		return &item{kind: itemOpaque, raw: line}
	}
	rest := line[colon+1:]
	value := strings.TrimSpace(rest)
	// The separator keeps the colon and the whitespace that follows it,
	// so a mutated value re-serializes with the original spacing.
	sep := line[colon : colon+1+leadingSpace(rest)]
	return &item{
		kind:  itemKV,
		raw:   line,
		key:   line[:colon],
		sep:   sep,
		value: value,
	}
}

func leadingSpace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
