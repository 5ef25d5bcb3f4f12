package set

import (
	"osz-builder/internal/asset"
	"osz-builder/internal/chart"
)

// BeatmapSet aggregates the documents, the shared overlay, and the
// binary assets of one set. It is built up by the pipeline and consumed
// exactly once by the archive writer; nothing mutates it afterwards.
// A set is owned by a single run; concurrent runs each build their own.
type BeatmapSet struct {
	Documents []*chart.Document
	Overlay   Overlay
	Assets    *asset.Bundle
}

// Validate checks the export preconditions: at least one difficulty,
// a title and artist in the overlay, and pairwise-distinct difficulty
// names.
func (s *BeatmapSet) Validate() error {
	if len(s.Documents) == 0 {
		return &ValidationError{Message: "no difficulties in set"}
	}
	if s.Overlay.Title == "" {
		return &ValidationError{Entity: chart.KeyTitle, Message: "overlay title is empty"}
	}
	if s.Overlay.Artist == "" {
		return &ValidationError{Entity: chart.KeyArtist, Message: "overlay artist is empty"}
	}
	seen := make(map[string]string, len(s.Documents))
	for _, doc := range s.Documents {
		version := doc.Version()
		if other, dup := seen[version]; dup {
			return &ValidationError{
				Entity:  doc.Name,
				Message: "difficulty name " + version + " duplicates " + other + "; rename or auto-number",
			}
		}
		seen[version] = doc.Name
	}
	return nil
}
