// Package chart parses and re-serializes .osu difficulty files.
//
// The format is line-oriented and loosely specified: named [Section]
// blocks where only a handful of sections (General, Editor, Metadata,
// Difficulty) are key-value structured. Everything else (events,
// timing points, hit objects, colours) is geometry/timing data this
// package never interprets. A Document therefore keeps two kinds of
// content: parsed key-value items that remember their original byte
// spelling, and opaque raw lines kept verbatim.
//
// The round-trip contract: serializing an unmutated Document reproduces
// the input bytes exactly, modulo line-ending normalization for files
// with mixed conventions and UTF-8 re-encoding for fallback-decoded
// input. Mutations only ever change the lines they target.
package chart

import (
	"strings"

	"osz-builder/internal/textenc"
)

// Canonical section and key names. Lookups are case-insensitive; these
// spellings are used when a missing section or key has to be created.
const (
	SectionGeneral    = "General"
	SectionEditor     = "Editor"
	SectionMetadata   = "Metadata"
	SectionDifficulty = "Difficulty"
	SectionEvents     = "Events"

	KeyTitle         = "Title"
	KeyArtist        = "Artist"
	KeyCreator       = "Creator"
	KeySource        = "Source"
	KeyTags          = "Tags"
	KeyVersion       = "Version"
	KeyAudioFilename = "AudioFilename"
	KeyPreviewTime   = "PreviewTime"
	KeyBeatmapID     = "BeatmapID"
	KeyBeatmapSetID  = "BeatmapSetID"
)

// Warning reports a recoverable condition found while parsing or
// transforming a document. Warnings accumulate on the pipeline result;
// they never abort a run.
type Warning struct {
	Stage   string // parse, unify, resolve, preview, archive
	Entity  string // document name, key, or asset filename
	Message string
}

func (w Warning) String() string {
	return w.Stage + " " + w.Entity + ": " + w.Message
}

type itemKind uint8

const (
	itemOpaque itemKind = iota
	itemKV
)

// item is one line of a section. Key-value items keep the raw line plus
// the exact key and separator spelling so an untouched item re-emits
// byte-identically and a mutated one keeps its original key and spacing.
type item struct {
	kind  itemKind
	raw   string
	key   string // exact text left of the colon
	sep   string // the colon plus any whitespace before the value
	value string // trimmed value
	dirty bool
}

func (it *item) line() string {
	if it.kind == itemOpaque || !it.dirty {
		return it.raw
	}
	return it.key + it.sep + it.value
}

// Section is one named block of a Document. Structured sections expose
// key-value access; opaque sections expose their raw lines by index.
type Section struct {
	name       string // text inside the brackets, as written
	header     string // the raw header line
	structured bool
	items      []*item
}

// Name returns the section name as written in the source file.
func (s *Section) Name() string { return s.name }

// Structured reports whether the section was parsed as key-value.
func (s *Section) Structured() bool { return s.structured }

// Value returns the trimmed value for key and whether it was found.
// Key comparison is case-insensitive, matching how the game reads them.
func (s *Section) Value(key string) (string, bool) {
	for _, it := range s.items {
		if it.kind == itemKV && strings.EqualFold(it.key, key) {
			return it.value, true
		}
	}
	return "", false
}

// Set replaces the value for key, or appends a new "Key:value" item at
// the end of the section when the key is absent. It reports whether the
// key had to be inserted. Setting a key to its current value is a no-op
// so that repeated application leaves the document bytes unchanged.
func (s *Section) Set(key, value string) (inserted bool) {
	for _, it := range s.items {
		if it.kind == itemKV && strings.EqualFold(it.key, key) {
			if it.value != value {
				it.value = value
				it.dirty = true
			}
			return false
		}
	}
	it := &item{kind: itemKV, key: key, sep: ":", value: value, dirty: true}
	// New keys go before any trailing blank lines so the section keeps
	// its visual separation from the next header.
	idx := len(s.items)
	for idx > 0 && s.items[idx-1].kind == itemOpaque && strings.TrimSpace(s.items[idx-1].raw) == "" {
		idx--
	}
	s.items = append(s.items, nil)
	copy(s.items[idx+1:], s.items[idx:])
	s.items[idx] = it
	return true
}

// Delete removes every item for key and reports whether any was found.
func (s *Section) Delete(key string) bool {
	found := false
	kept := s.items[:0]
	for _, it := range s.items {
		if it.kind == itemKV && strings.EqualFold(it.key, key) {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return found
}

// Keys returns the keys of the section in their original order.
func (s *Section) Keys() []string {
	var keys []string
	for _, it := range s.items {
		if it.kind == itemKV {
			keys = append(keys, it.key)
		}
	}
	return keys
}

// Len returns the number of lines in the section body.
func (s *Section) Len() int { return len(s.items) }

// Line returns the current text of the i-th body line.
func (s *Section) Line(i int) string { return s.items[i].line() }

// SetLine replaces the i-th body line with an opaque raw line.
func (s *Section) SetLine(i int, line string) {
	s.items[i] = &item{kind: itemOpaque, raw: line}
}

// InsertLine inserts an opaque raw line at index i.
func (s *Section) InsertLine(i int, line string) {
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = &item{kind: itemOpaque, raw: line}
}

// RemoveLine deletes the i-th body line.
func (s *Section) RemoveLine(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Document is the parsed, round-trippable form of one difficulty file.
type Document struct {
	// Name identifies the document in warnings and errors; it is the
	// base name of the source file.
	Name string

	preamble []string // lines before the first section header
	sections []*Section
	layout   textenc.Layout
}

// Section returns the named section, or nil. Name comparison is
// case-insensitive.
func (d *Document) Section(name string) *Section {
	for _, s := range d.sections {
		if strings.EqualFold(s.name, name) {
			return s
		}
	}
	return nil
}

// EnsureSection returns the named section, creating an empty structured
// or opaque one at the end of the document when absent. It reports
// whether the section had to be created.
func (d *Document) EnsureSection(name string) (*Section, bool) {
	if s := d.Section(name); s != nil {
		return s, false
	}
	s := &Section{
		name:       name,
		header:     "[" + name + "]",
		structured: structuredSection(name),
	}
	// A blank line between the previous section and the new header
	// keeps the file readable; the game's parser ignores it.
	if n := len(d.sections); n > 0 {
		prev := d.sections[n-1]
		if prev.Len() == 0 || strings.TrimSpace(prev.items[prev.Len()-1].raw) != "" {
			prev.items = append(prev.items, &item{kind: itemOpaque, raw: ""})
		}
	}
	d.sections = append(d.sections, s)
	return s, true
}

// Sections returns the document's sections in file order.
func (d *Document) Sections() []*Section { return d.sections }

// value is a nil-safe section lookup used by the derived accessors.
func (d *Document) value(section, key string) string {
	if s := d.Section(section); s != nil {
		if v, ok := s.Value(key); ok {
			return v
		}
	}
	return ""
}

// Derived accessors. All return "" when the section or key is absent.

func (d *Document) Title() string   { return d.value(SectionMetadata, KeyTitle) }
func (d *Document) Artist() string  { return d.value(SectionMetadata, KeyArtist) }
func (d *Document) Creator() string { return d.value(SectionMetadata, KeyCreator) }
func (d *Document) Source() string  { return d.value(SectionMetadata, KeySource) }
func (d *Document) Tags() string    { return d.value(SectionMetadata, KeyTags) }

// Version returns the per-difficulty name from [Metadata].
func (d *Document) Version() string { return d.value(SectionMetadata, KeyVersion) }

// AudioFilename returns the audio track reference from [General].
func (d *Document) AudioFilename() string { return d.value(SectionGeneral, KeyAudioFilename) }

// PreviewTimeMs returns the preview offset from [General] and whether
// it was present and numeric.
func (d *Document) PreviewTimeMs() (int, bool) {
	v, ok := d.sectionValue(SectionGeneral, KeyPreviewTime)
	if !ok {
		return 0, false
	}
	ms, err := atoiStrict(v)
	if err != nil {
		return 0, false
	}
	return ms, true
}

func (d *Document) sectionValue(section, key string) (string, bool) {
	if s := d.Section(section); s != nil {
		return s.Value(key)
	}
	return "", false
}

// BackgroundFilename returns the filename from the first background
// declaration line in [Events], or "".
func (d *Document) BackgroundFilename() string {
	events := d.Section(SectionEvents)
	if events == nil {
		return ""
	}
	for i := 0; i < events.Len(); i++ {
		if name, ok := ParseBackgroundLine(events.Line(i)); ok {
			return name
		}
	}
	return ""
}
