// Package archive serializes an assembled beatmap set into one .osz
// package. The container is standard zip with Deflate entries (the
// game accepts nothing else), written reproducibly:
//
//   - entry order is fixed: difficulties in set order, then the
//     background, then audio tracks sorted by filename
//   - every entry carries the same constant timestamp and mode
//   - repeated builds from identical input are byte-identical
//
// Publication is atomic: the archive is staged in a temp file next to
// the target and renamed into place only on full success, so a failed
// or cancelled run never leaves a corrupt or partial artifact.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"

	"osz-builder/internal/chart"
	"osz-builder/internal/set"
)

// fixedModTime ensures byte-for-byte reproducible archives
// (1980-01-01 UTC, the zip epoch).
var fixedModTime = time.Unix(315532800, 0).UTC()

// EmptySetError reports a build attempted with zero difficulties.
type EmptySetError struct{}

func (*EmptySetError) Error() string { return "archive: set has no difficulties" }

// IncompleteSetError reports a document referencing an asset the
// bundle does not carry.
type IncompleteSetError struct {
	Document string
	Filename string
}

func (e *IncompleteSetError) Error() string {
	return fmt.Sprintf("archive: %s references %q which is not in the asset bundle", e.Document, e.Filename)
}

// Build serializes the set into .osz bytes. It fails with EmptySetError
// when the set has no documents and IncompleteSetError when any
// document references an asset absent from the bundle. The set is not
// mutated.
func Build(s *set.BeatmapSet) ([]byte, error) {
	if len(s.Documents) == 0 {
		return nil, &EmptySetError{}
	}
	if err := checkComplete(s); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	used := make(map[string]struct{})
	for _, doc := range s.Documents {
		name := uniqueName(
			EntryName(s.Overlay.Artist, s.Overlay.Title, s.Overlay.Creator, doc.Version()),
			used,
		)
		if err := writeEntry(zw, name, chart.Serialize(doc)); err != nil {
			return nil, err
		}
	}
	if bg := s.Assets.Background(); bg != nil {
		if err := writeEntry(zw, uniqueName(bg.Name, used), bg.Data); err != nil {
			return nil, err
		}
	}
	for _, track := range s.Assets.Audio() {
		if err := writeEntry(zw, uniqueName(track.Name, used), track.Data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// checkComplete verifies every document reference against the bundle.
func checkComplete(s *set.BeatmapSet) error {
	for _, doc := range s.Documents {
		if audio := doc.AudioFilename(); audio != "" {
			if _, ok := s.Assets.Lookup(audio); !ok {
				return &IncompleteSetError{Document: doc.Name, Filename: audio}
			}
		}
		if bg := doc.BackgroundFilename(); bg != "" {
			if _, ok := s.Assets.Lookup(bg); !ok {
				return &IncompleteSetError{Document: doc.Name, Filename: bg}
			}
		}
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	h := &zip.FileHeader{Name: name, Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = fixedModTime
	w, err := zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// WriteFile builds the archive and publishes it atomically at path.
// The bytes are staged in a temporary file in the target directory,
// synced, and renamed over the destination; on any failure the temp
// file is removed and the previous artifact, if any, stays intact.
func WriteFile(s *set.BeatmapSet, path string) error {
	data, err := Build(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-")
	if err != nil {
		return fmt.Errorf("stage archive: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("stage archive: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync archive: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close archive: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish archive: %w", err)
	}
	return nil
}
