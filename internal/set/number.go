package set

import (
	"strconv"

	"osz-builder/internal/chart"
)

// Number renames the difficulties to "1", "2", ... "N" in the order the
// documents were supplied. Only the Version field changes; output
// filenames pick up the new names later, at archive time. A document
// without a Version key gets one inserted, with a warning.
func Number(docs []*chart.Document) ([]chart.Warning, error) {
	if len(docs) == 0 {
		return nil, &ValidationError{Message: "no difficulties to number"}
	}
	var warnings []chart.Warning
	for i, doc := range docs {
		meta, created := doc.EnsureSection(chart.SectionMetadata)
		if created {
			warnings = append(warnings, chart.Warning{
				Stage:   "unify",
				Entity:  doc.Name,
				Message: "no [Metadata] section, created one",
			})
		}
		if meta.Set(chart.KeyVersion, strconv.Itoa(i+1)) {
			warnings = append(warnings, chart.Warning{
				Stage:   "unify",
				Entity:  doc.Name,
				Message: "missing Version key, inserted",
			})
		}
	}
	return warnings, nil
}
