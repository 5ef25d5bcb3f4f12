package set

import "fmt"

// ValidationError reports a missing or out-of-range required value:
// zero difficulties, an empty overlay title, duplicate version names.
type ValidationError struct {
	Entity  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Entity == "" {
		return "set: " + e.Message
	}
	return fmt.Sprintf("set %s: %s", e.Entity, e.Message)
}

// RangeError reports a preview time that cannot be repaired by
// clamping. Times past the end of the track are clamped and warned
// about instead; only a negative offset is an error.
type RangeError struct {
	PreviewMs int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("preview time %dms is negative", e.PreviewMs)
}
