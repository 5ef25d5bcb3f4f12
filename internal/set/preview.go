package set

import (
	"fmt"
	"strconv"

	"osz-builder/internal/chart"
)

// previewClampMargin keeps a clamped preview strictly inside the track
// so playback has at least something to play.
const previewClampMargin = 1 // ms

// ValidatePreview checks a user-chosen preview offset against the audio
// duration reported by the external decoder. A negative offset is a
// RangeError. An offset at or past the end of the track is clamped to
// just before the end and reported as a warning. This package never
// inspects audio bytes itself.
func ValidatePreview(previewMs, audioDurationMs int) (int, []chart.Warning, error) {
	if previewMs < 0 {
		return 0, nil, &RangeError{PreviewMs: previewMs}
	}
	if audioDurationMs > 0 && previewMs >= audioDurationMs {
		clamped := audioDurationMs - previewClampMargin
		if clamped < 0 {
			clamped = 0
		}
		return clamped, []chart.Warning{{
			Stage:   "preview",
			Entity:  strconv.Itoa(previewMs),
			Message: fmt.Sprintf("preview %dms past track end %dms, clamped to %dms", previewMs, audioDurationMs, clamped),
		}}, nil
	}
	return previewMs, nil, nil
}

// StampPreview writes the accepted preview offset into every document's
// [General] section, inserting the key (or the whole section) when
// absent.
func StampPreview(docs []*chart.Document, previewMs int) []chart.Warning {
	var warnings []chart.Warning
	for _, doc := range docs {
		general, created := doc.EnsureSection(chart.SectionGeneral)
		if created {
			warnings = append(warnings, chart.Warning{
				Stage:   "preview",
				Entity:  doc.Name,
				Message: "no [General] section, created one",
			})
		}
		if general.Set(chart.KeyPreviewTime, strconv.Itoa(previewMs)) {
			warnings = append(warnings, chart.Warning{
				Stage:   "preview",
				Entity:  doc.Name,
				Message: "missing PreviewTime key, inserted",
			})
		}
	}
	return warnings
}
