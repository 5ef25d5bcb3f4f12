package chart

import (
	"errors"
	"strings"
	"testing"
)

// sampleChart is a small but representative difficulty file: mixed
// key-value spacing, comments, opaque geometry sections, CRLF-free.
const sampleChart = `osu file format v14

[General]
AudioFilename: audio.mp3
AudioLeadIn: 0
PreviewTime: -1
Mode: 0

[Editor]
BeatDivisor: 4

[Metadata]
Title:Example Song
TitleUnicode:Example Song
Artist:Some Artist
Creator:mapper
Version:Easy
Source:
Tags:test chart
BeatmapID:123456
BeatmapSetID:54321

[Difficulty]
HPDrainRate:5
CircleSize:4

[Events]
//Background and Video events
0,0,"old-bg.jpg",0,0
//Break Periods
2,10000,12000

[TimingPoints]
560,300,4,2,1,60,1,0

[HitObjects]
256,192,1000,1,0,0:0:0:0:
`

func mustParse(t *testing.T, name, raw string) *Document {
	t.Helper()
	doc, _, err := Parse(name, []byte(raw))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return doc
}

func TestParseSectionsAndAccessors(t *testing.T) {
	doc := mustParse(t, "easy.osu", sampleChart)

	if got := doc.Title(); got != "Example Song" {
		t.Fatalf("Title got %q", got)
	}
	if got := doc.Artist(); got != "Some Artist" {
		t.Fatalf("Artist got %q", got)
	}
	if got := doc.Creator(); got != "mapper" {
		t.Fatalf("Creator got %q", got)
	}
	if got := doc.Version(); got != "Easy" {
		t.Fatalf("Version got %q", got)
	}
	if got := doc.Source(); got != "" {
		t.Fatalf("Source got %q, want empty", got)
	}
	if got := doc.AudioFilename(); got != "audio.mp3" {
		t.Fatalf("AudioFilename got %q", got)
	}
	if got := doc.BackgroundFilename(); got != "old-bg.jpg" {
		t.Fatalf("BackgroundFilename got %q", got)
	}
	if ms, ok := doc.PreviewTimeMs(); !ok || ms != -1 {
		t.Fatalf("PreviewTimeMs got %d, %v", ms, ok)
	}
}

func TestParseSectionLookupCaseInsensitive(t *testing.T) {
	doc := mustParse(t, "easy.osu", sampleChart)
	if doc.Section("metadata") == nil {
		t.Fatalf("lowercase section lookup failed")
	}
	meta := doc.Section("METADATA")
	if v, ok := meta.Value("title"); !ok || v != "Example Song" {
		t.Fatalf("case-insensitive key lookup got %q, %v", v, ok)
	}
}

func TestParseOpaqueSectionUntouched(t *testing.T) {
	doc := mustParse(t, "easy.osu", sampleChart)
	events := doc.Section(SectionEvents)
	want := []string{
		"//Background and Video events",
		`0,0,"old-bg.jpg",0,0`,
		"//Break Periods",
		"2,10000,12000",
		"",
	}
	if events.Len() != len(want) {
		t.Fatalf("events has %d lines, want %d", events.Len(), len(want))
	}
	for i, w := range want {
		if got := events.Line(i); got != w {
			t.Fatalf("events line %d got %q want %q", i, got, w)
		}
	}
}

func TestParseMalformedLineKeptWithWarning(t *testing.T) {
	raw := "[General]\nAudioFilename: audio.mp3\nthis line has no separator\n"
	doc, warnings, err := Parse("broken.osu", []byte(raw))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0].Message, "no separator") {
		t.Fatalf("unexpected warning: %v", warnings[0])
	}
	general := doc.Section(SectionGeneral)
	if got := general.Line(1); got != "this line has no separator" {
		t.Fatalf("malformed line not preserved: %q", got)
	}
	if string(Serialize(doc)) != raw {
		t.Fatalf("malformed line lost in round trip")
	}
}

func TestParseCommentInStructuredSectionOpaque(t *testing.T) {
	raw := "[General]\n// a comment: with a colon\nAudioFilename: audio.mp3\n"
	doc, warnings, err := Parse("c.osu", []byte(raw))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("comment produced warnings: %v", warnings)
	}
	// The comment must not be readable as a key.
	if _, ok := doc.Section(SectionGeneral).Value("// a comment"); ok {
		t.Fatalf("comment parsed as key-value")
	}
	if string(Serialize(doc)) != raw {
		t.Fatalf("comment lost in round trip")
	}
}

func TestParseNoSectionsFails(t *testing.T) {
	_, _, err := Parse("empty.osu", []byte("just some text\nwithout any header\n"))
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want FormatError", err)
	}
	if ferr.Document != "empty.osu" {
		t.Fatalf("FormatError names %q", ferr.Document)
	}
}

func TestSetInsertsBeforeTrailingBlank(t *testing.T) {
	doc := mustParse(t, "easy.osu", sampleChart)
	general := doc.Section(SectionGeneral)
	if inserted := general.Set("SamplesMatchPlaybackRate", "1"); !inserted {
		t.Fatalf("expected insertion for new key")
	}
	// The new key lands before the blank separator line, after Mode.
	text := string(Serialize(doc))
	if !strings.Contains(text, "Mode: 0\nSamplesMatchPlaybackRate:1\n\n[Editor]") {
		t.Fatalf("inserted key in wrong position:\n%s", text)
	}
}

func TestParseBackgroundLine(t *testing.T) {
	cases := []struct {
		line string
		name string
		ok   bool
	}{
		{`0,0,"bg.jpg",0,0`, "bg.jpg", true},
		{`0,0,"dir\bg with space.png"`, `dir\bg with space.png`, true},
		{`2,10000,12000`, "", false},
		{`1,0,"video.mp4"`, "", false},
		{`Sprite,Background,Centre,"sb.png",320,240`, "", false},
	}
	for _, tc := range cases {
		name, ok := ParseBackgroundLine(tc.line)
		if ok != tc.ok || name != tc.name {
			t.Fatalf("ParseBackgroundLine(%q) = %q, %v", tc.line, name, ok)
		}
	}
}
