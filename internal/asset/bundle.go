// Package asset manages the binary files referenced by a beatmap set:
// exactly one background image and one or more audio tracks. Audio is
// deduplicated by filename, the policy the game itself uses, while
// BLAKE3 content hashes catch the two conditions filename dedup hides:
// the same name arriving with different bytes, and identical bytes
// hiding behind two names. Both are reported, never silently resolved.
package asset

import (
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"osz-builder/internal/chart"
)

// MissingError reports a referenced filename with no bytes supplied to
// the run.
type MissingError struct {
	Document string
	Filename string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("asset %q referenced by %s was not supplied", e.Filename, e.Document)
}

// Asset is one binary file with its content identity.
type Asset struct {
	Name string
	Data []byte
	sum  [32]byte
}

// Size returns the byte length of the asset.
func (a *Asset) Size() int64 { return int64(len(a.Data)) }

// Bundle is the deduplicated asset collection of one set.
type Bundle struct {
	background *Asset
	audio      []*Asset
	byName     map[string]*Asset
	bySum      map[[32]byte]*Asset
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{
		byName: make(map[string]*Asset),
		bySum:  make(map[[32]byte]*Asset),
	}
}

// SetBackground installs the single background image, replacing any
// previous choice. The stored name is the sanitized base name of the
// supplied reference, the name the asset will carry in the archive.
func (b *Bundle) SetBackground(name string, data []byte) *Asset {
	if b.background != nil {
		delete(b.byName, b.background.Name)
	}
	a := &Asset{Name: entryName(name), Data: data, sum: blake3.Sum256(data)}
	b.background = a
	b.byName[a.Name] = a
	return a
}

// AddAudio registers an audio track under the sanitized base name of
// the supplied reference and returns the entry stored under that name.
// The first occurrence of a name wins; a repeat with identical bytes is
// a no-op, a repeat with different bytes keeps the first and warns.
// Identical bytes under a second distinct name stay a separate entry,
// since collapsing them would rewrite references the caller kept
// distinct on purpose, but the duplication is warned about.
func (b *Bundle) AddAudio(name string, data []byte) (*Asset, []chart.Warning) {
	name = entryName(name)
	sum := blake3.Sum256(data)
	if existing, ok := b.byName[name]; ok {
		if existing.sum == sum {
			return existing, nil
		}
		return existing, []chart.Warning{{
			Stage:   "resolve",
			Entity:  name,
			Message: "supplied twice with different content, keeping the first",
		}}
	}
	a := &Asset{Name: name, Data: data, sum: sum}
	b.audio = append(b.audio, a)
	b.byName[name] = a

	var warnings []chart.Warning
	if twin, ok := b.bySum[sum]; ok && twin.Name != name {
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  name,
			Message: "content is byte-identical to " + twin.Name + ", both kept",
		})
	} else {
		b.bySum[sum] = a
	}
	return a, warnings
}

// Background returns the chosen background, or nil.
func (b *Bundle) Background() *Asset { return b.background }

// Audio returns the audio tracks sorted by filename, the order they
// appear in the archive.
func (b *Bundle) Audio() []*Asset {
	sorted := make([]*Asset, len(b.audio))
	copy(sorted, b.audio)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// Lookup returns the asset stored under name.
func (b *Bundle) Lookup(name string) (*Asset, bool) {
	a, ok := b.byName[name]
	return a, ok
}
