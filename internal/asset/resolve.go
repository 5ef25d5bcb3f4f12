package asset

import (
	"osz-builder/internal/chart"
)

// Resolve makes every document's asset references consistent with the
// bundle. Each background declaration is rewritten to the bundle's one
// background; audio references keep their per-difficulty tracks unless
// sharedAudio designates one track for the whole set. Every reference
// must have bytes in the bundle, otherwise a MissingError identifies
// the document and filename.
//
// Only the background declaration line inside [Events] is touched;
// storyboard commands, breaks, and every other event line pass through
// unchanged. Duplicate background declarations after the first are
// dropped with a warning.
func Resolve(docs []*chart.Document, bundle *Bundle, sharedAudio string) ([]chart.Warning, error) {
	if bundle.Background() == nil {
		return nil, &MissingError{Document: "set", Filename: "(background)"}
	}
	if sharedAudio != "" {
		sharedAudio = entryName(sharedAudio)
		if _, ok := bundle.Lookup(sharedAudio); !ok {
			return nil, &MissingError{Document: "set", Filename: sharedAudio}
		}
	}

	var warnings []chart.Warning
	for _, doc := range docs {
		w, err := resolveAudio(doc, bundle, sharedAudio)
		warnings = append(warnings, w...)
		if err != nil {
			return warnings, err
		}
		warnings = append(warnings, rewriteBackground(doc, bundle.Background().Name)...)
	}
	return warnings, nil
}

func resolveAudio(doc *chart.Document, bundle *Bundle, sharedAudio string) ([]chart.Warning, error) {
	general := doc.Section(chart.SectionGeneral)
	target := sharedAudio
	if target == "" {
		name := doc.AudioFilename()
		if name == "" {
			return nil, &MissingError{Document: doc.Name, Filename: "(no AudioFilename)"}
		}
		// References may carry directory components from the source
		// folder; the archive is flat, so the entry name is the
		// sanitized base name.
		target = entryName(name)
		if _, ok := bundle.Lookup(target); !ok {
			return nil, &MissingError{Document: doc.Name, Filename: target}
		}
	}
	var warnings []chart.Warning
	if general == nil {
		general, _ = doc.EnsureSection(chart.SectionGeneral)
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  doc.Name,
			Message: "no [General] section, created one",
		})
	}
	if general.Set(chart.KeyAudioFilename, target) {
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  doc.Name,
			Message: "missing AudioFilename key, inserted",
		})
	}
	return warnings, nil
}

// rewriteBackground rewrites the first background declaration in
// [Events] to point at name, drops later duplicates, and synthesizes
// the declaration (and the section, if needed) when absent.
func rewriteBackground(doc *chart.Document, name string) []chart.Warning {
	var warnings []chart.Warning
	events := doc.Section(chart.SectionEvents)
	if events == nil {
		events, _ = doc.EnsureSection(chart.SectionEvents)
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  doc.Name,
			Message: "no [Events] section, created one",
		})
	}

	written := false
	for i := 0; i < events.Len(); {
		if _, ok := chart.ParseBackgroundLine(events.Line(i)); !ok {
			i++
			continue
		}
		if written {
			events.RemoveLine(i)
			warnings = append(warnings, chart.Warning{
				Stage:   "resolve",
				Entity:  doc.Name,
				Message: "duplicate background declaration dropped",
			})
			continue
		}
		if line := chart.FormatBackgroundLine(name); events.Line(i) != line {
			events.SetLine(i, line)
		}
		written = true
		i++
	}
	if !written {
		events.InsertLine(0, chart.FormatBackgroundLine(name))
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  doc.Name,
			Message: "no background declaration, inserted one",
		})
	}
	return warnings
}
