package set

import (
	"errors"
	"strings"
	"testing"

	"osz-builder/internal/chart"
)

func TestValidateAcceptsCompleteSet(t *testing.T) {
	s := &BeatmapSet{
		Documents: []*chart.Document{
			parseDoc(t, "a.osu", chartA),
			parseDoc(t, "b.osu", chartB),
		},
		Overlay: testOverlay(),
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	base := func() *BeatmapSet {
		return &BeatmapSet{
			Documents: []*chart.Document{
				parseDoc(t, "a.osu", chartA),
				parseDoc(t, "b.osu", chartB),
			},
			Overlay: testOverlay(),
		}
	}
	cases := []struct {
		name   string
		mutate func(*BeatmapSet)
		want   string
	}{
		{"no documents", func(s *BeatmapSet) { s.Documents = nil }, "no difficulties"},
		{"empty title", func(s *BeatmapSet) { s.Overlay.Title = "" }, "title is empty"},
		{"empty artist", func(s *BeatmapSet) { s.Overlay.Artist = "" }, "artist is empty"},
		{
			"duplicate versions",
			func(s *BeatmapSet) {
				s.Documents[1].Section(chart.SectionMetadata).Set(chart.KeyVersion, "Easy")
			},
			"duplicates",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(s)
			err := s.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}
