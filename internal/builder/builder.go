// Package builder runs the whole assembly pipeline: collect and parse
// the difficulty files, unify metadata, resolve assets, number and
// stamp, and publish the .osz archive.
//
// A run owns its BeatmapSet exclusively and touches no package-level
// state, so independent runs are safe to execute concurrently from
// separate goroutines. Cancellation needs no cooperation from this
// package: the atomic publish in the archive writer means a discarded
// run never corrupts prior output.
package builder

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"osz-builder/internal/archive"
	"osz-builder/internal/asset"
	"osz-builder/internal/chart"
	"osz-builder/internal/set"
)

// Options configures one pipeline run.
type Options struct {
	// Inputs are .osu file paths, or a single directory to scan.
	Inputs []string

	// OutPath is where the .osz archive is published.
	OutPath string

	// Overlay is the shared metadata; empty text fields are seeded
	// from a conventionally named input when possible.
	Overlay set.Overlay

	// BackgroundPath is the shared background image file. Required.
	BackgroundPath string

	// SharedAudioPath optionally designates one audio track for the
	// whole set. When empty, each difficulty keeps its own track,
	// loaded from next to its source file.
	SharedAudioPath string

	// PreviewMs, when non-nil, is the user-chosen preview offset to
	// validate and stamp into every difficulty.
	PreviewMs *int

	// AudioDurationMs is the track length reported by the external
	// audio decoder, used only to clamp the preview. Zero disables
	// the upper-bound check.
	AudioDurationMs int

	// AutoNumber renames difficulties to "1".."N" in input order.
	AutoNumber bool

	// Logger receives stage progress. Nil discards.
	Logger *slog.Logger
}

// Result reports a successful run.
type Result struct {
	ArchivePath string
	Difficulty  []string // final difficulty names, in set order
	Warnings    []chart.Warning
}

// Run executes the pipeline. Recoverable conditions accumulate as
// warnings on the Result; structural failures abort with a typed error
// and leave no partial archive behind.
func Run(opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	paths, err := collectInputs(opts.Inputs)
	if err != nil {
		return nil, err
	}
	logger.Info("collect", "files", len(paths))

	var (
		docs     []*chart.Document
		srcDirs  []string
		warnings []chart.Warning
	)
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		doc, w, err := chart.Parse(filepath.Base(p), raw)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		srcDirs = append(srcDirs, filepath.Dir(p))
	}

	overlay := opts.Overlay
	if overlay.Seed(docs) {
		logger.Info("seed", "title", overlay.Title, "artist", overlay.Artist)
	}

	bundle, sharedAudio, w, err := loadAssets(docs, srcDirs, opts)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, err
	}
	overlay.Background = bundle.Background().Name

	warnings = append(warnings, set.Apply(overlay, docs)...)
	logger.Info("unify", "title", overlay.Title, "difficulties", len(docs))

	w, err = asset.Resolve(docs, bundle, sharedAudio)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, err
	}
	overlay.Audio = sharedAudio

	if opts.AutoNumber {
		w, err := set.Number(docs)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, err
		}
	}

	if opts.PreviewMs != nil {
		accepted, w, err := set.ValidatePreview(*opts.PreviewMs, opts.AudioDurationMs)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, set.StampPreview(docs, accepted)...)
		logger.Info("preview", "ms", accepted)
	}

	bset := &set.BeatmapSet{Documents: docs, Overlay: overlay, Assets: bundle}
	if err := bset.Validate(); err != nil {
		return nil, err
	}
	if err := archive.WriteFile(bset, opts.OutPath); err != nil {
		return nil, err
	}
	logger.Info("publish", "path", opts.OutPath, "warnings", len(warnings))

	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Version()
	}
	return &Result{ArchivePath: opts.OutPath, Difficulty: names, Warnings: warnings}, nil
}

// loadAssets reads the background and audio bytes referenced by the
// run and registers them in a fresh bundle.
func loadAssets(docs []*chart.Document, srcDirs []string, opts Options) (*asset.Bundle, string, []chart.Warning, error) {
	bundle := asset.NewBundle()
	var warnings []chart.Warning

	if opts.BackgroundPath == "" {
		return nil, "", nil, &asset.MissingError{Document: "set", Filename: "(background)"}
	}
	bgData, err := os.ReadFile(opts.BackgroundPath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("read background: %w", err)
	}
	bg := bundle.SetBackground(filepath.Base(opts.BackgroundPath), bgData)
	_, _, w := asset.ProbeBackground(bg)
	warnings = append(warnings, w...)

	if opts.SharedAudioPath != "" {
		data, err := os.ReadFile(opts.SharedAudioPath)
		if err != nil {
			return nil, "", nil, fmt.Errorf("read audio: %w", err)
		}
		track, w := bundle.AddAudio(filepath.Base(opts.SharedAudioPath), data)
		warnings = append(warnings, w...)
		return bundle, track.Name, warnings, nil
	}

	for i, doc := range docs {
		ref := doc.AudioFilename()
		if ref == "" {
			return nil, "", warnings, &asset.MissingError{Document: doc.Name, Filename: "(no AudioFilename)"}
		}
		p := filepath.Join(srcDirs[i], filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/")))
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, "", warnings, &asset.MissingError{Document: doc.Name, Filename: ref}
			}
			return nil, "", warnings, fmt.Errorf("read audio for %s: %w", doc.Name, err)
		}
		_, w := bundle.AddAudio(ref, data)
		warnings = append(warnings, w...)
	}
	return bundle, "", warnings, nil
}
