// Package set applies shared state across the difficulties of one
// beatmap set: the metadata overlay, sequential difficulty numbering,
// the preview point, and the set-level preconditions for export.
//
// All transforms are pure over the documents they are handed and are
// idempotent, so they compose in any order and can be re-run on a
// previously assembled set without changing it further.
package set

import (
	"regexp"

	"osz-builder/internal/chart"
)

// Overlay is the shared target state for a whole set. Zero-value
// string fields mean "not chosen"; Seed can fill them from a suitably
// named source document.
type Overlay struct {
	Title   string
	Artist  string
	Creator string
	Source  string
	Tags    string

	// Background is the chosen shared background filename (as it will
	// appear inside the archive). Required for export.
	Background string

	// Audio optionally designates one shared audio track for every
	// difficulty. Empty means each difficulty keeps its own track.
	Audio string
}

// metadataKeys are the [Metadata] fields the overlay controls, in the
// order they are inserted when absent.
var metadataKeys = []struct {
	key   string
	value func(Overlay) string
}{
	{chart.KeyTitle, func(o Overlay) string { return o.Title }},
	{chart.KeyArtist, func(o Overlay) string { return o.Artist }},
	{chart.KeyCreator, func(o Overlay) string { return o.Creator }},
	{chart.KeySource, func(o Overlay) string { return o.Source }},
	{chart.KeyTags, func(o Overlay) string { return o.Tags }},
}

// Apply writes the overlay's title, artist, creator, source, and tags
// into every document's [Metadata] section, leaving the per-difficulty
// Version and every other field untouched. Missing keys are inserted at
// the end of the section with a warning; a missing [Metadata] section
// is created. Submission identifiers are reset: the assembled set is a
// new, unsubmitted set, so a present BeatmapID becomes 0 and a present
// BeatmapSetID becomes -1. Applying the same overlay twice produces an
// identical result to applying it once.
func Apply(overlay Overlay, docs []*chart.Document) []chart.Warning {
	var warnings []chart.Warning
	for _, doc := range docs {
		meta, created := doc.EnsureSection(chart.SectionMetadata)
		if created {
			warnings = append(warnings, chart.Warning{
				Stage:   "unify",
				Entity:  doc.Name,
				Message: "no [Metadata] section, created one",
			})
		}
		for _, mk := range metadataKeys {
			if meta.Set(mk.key, mk.value(overlay)) {
				warnings = append(warnings, chart.Warning{
					Stage:   "unify",
					Entity:  doc.Name,
					Message: "missing " + mk.key + " key, inserted",
				})
			}
		}
		if _, ok := meta.Value(chart.KeyBeatmapID); ok {
			meta.Set(chart.KeyBeatmapID, "0")
		}
		if _, ok := meta.Value(chart.KeyBeatmapSetID); ok {
			meta.Set(chart.KeyBeatmapSetID, "-1")
		}
	}
	return warnings
}

// formattedNameRE matches the conventional source filename
// "Artist - Title (Creator) [Version].osu". Documents named this way
// carry trustworthy metadata worth seeding the overlay from.
var formattedNameRE = regexp.MustCompile(`(?i)^.+ - .+ \(.+\) \[.+\]\.osu$`)

// Seed fills empty overlay text fields from the first document whose
// source filename follows the conventional format. Explicitly chosen
// values are never overwritten. It reports whether any field changed.
func (o *Overlay) Seed(docs []*chart.Document) bool {
	for _, doc := range docs {
		if !formattedNameRE.MatchString(doc.Name) {
			continue
		}
		changed := false
		seed := func(dst *string, v string) {
			if *dst == "" && v != "" {
				*dst = v
				changed = true
			}
		}
		seed(&o.Title, doc.Title())
		seed(&o.Artist, doc.Artist())
		seed(&o.Creator, doc.Creator())
		seed(&o.Source, doc.Source())
		seed(&o.Tags, doc.Tags())
		return changed
	}
	return false
}
