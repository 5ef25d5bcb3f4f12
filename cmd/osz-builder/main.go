// Package main provides the osz-builder CLI. It assembles one or more
// .osu difficulty files into a single .osz beatmap set: shared metadata
// is applied across every difficulty, the background and audio assets
// are resolved and deduplicated, an optional preview point is stamped,
// and the result is published as one reproducible archive.
//
// Usage:
//
//	osz-builder --out set.osz --background bg.jpg [flags] <file.osu ...|dir>
//
// A YAML set definition (--config) can carry the same values as the
// flags; explicit flags win.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"osz-builder/internal/builder"
	"osz-builder/internal/set"
)

// cliConfig carries the parsed command line before merging with the
// optional config file.
type cliConfig struct {
	out        string
	configPath string

	title   string
	artist  string
	creator string
	source  string
	tags    string

	background string
	audio      string

	previewMs       int
	previewSet      bool
	audioDurationMs int

	autoNumber bool
	verbose    bool

	inputs []string
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	fs := pflag.NewFlagSet("osz-builder", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s --out set.osz --background bg.jpg [flags] <file.osu ...|dir>\n\nFlags:\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	fs.StringVarP(&cfg.out, "out", "o", "", "path of the .osz archive to write")
	fs.StringVarP(&cfg.configPath, "config", "c", "", "YAML set definition (flags override it)")

	fs.StringVar(&cfg.title, "title", "", "shared Title for every difficulty")
	fs.StringVar(&cfg.artist, "artist", "", "shared Artist")
	fs.StringVar(&cfg.creator, "creator", "", "shared Creator")
	fs.StringVar(&cfg.source, "source", "", "shared Source")
	fs.StringVar(&cfg.tags, "tags", "", "shared space-separated Tags")

	fs.StringVar(&cfg.background, "background", "", "shared background image file")
	fs.StringVar(&cfg.audio, "audio", "", "use one shared audio track for every difficulty")

	fs.IntVar(&cfg.previewMs, "preview-ms", 0, "preview point offset in milliseconds")
	fs.IntVar(&cfg.audioDurationMs, "audio-duration-ms", 0, "audio track length in milliseconds, for preview clamping")

	fs.BoolVar(&cfg.autoNumber, "auto-number", false, "rename difficulties to 1, 2, ... in input order")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log pipeline stages")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.previewSet = fs.Changed("preview-ms")
	cfg.inputs = fs.Args()
	if len(cfg.inputs) == 0 {
		return cfg, fmt.Errorf("no input files; pass .osu files or a directory")
	}
	return cfg, nil
}

// buildOptions merges the config file under the flags and produces the
// pipeline options. Paths from the config file are resolved relative to
// the file's directory.
func buildOptions(cfg cliConfig) (builder.Options, error) {
	var file fileConfig
	if cfg.configPath != "" {
		loaded, err := loadConfig(cfg.configPath)
		if err != nil {
			return builder.Options{}, err
		}
		file = loaded
		base := filepath.Dir(cfg.configPath)
		if file.Background != "" && !filepath.IsAbs(file.Background) {
			file.Background = filepath.Join(base, file.Background)
		}
		if file.Audio != "" && !filepath.IsAbs(file.Audio) {
			file.Audio = filepath.Join(base, file.Audio)
		}
	}

	pick := func(flag, fromFile string) string {
		if flag != "" {
			return flag
		}
		return fromFile
	}

	opts := builder.Options{
		Inputs:  cfg.inputs,
		OutPath: pick(cfg.out, file.Out),
		Overlay: set.Overlay{
			Title:   pick(cfg.title, file.Title),
			Artist:  pick(cfg.artist, file.Artist),
			Creator: pick(cfg.creator, file.Creator),
			Source:  pick(cfg.source, file.Source),
			Tags:    pick(cfg.tags, file.Tags),
		},
		BackgroundPath:  pick(cfg.background, file.Background),
		SharedAudioPath: pick(cfg.audio, file.Audio),
		AudioDurationMs: cfg.audioDurationMs,
		AutoNumber:      cfg.autoNumber || file.AutoNumber,
	}
	if opts.AudioDurationMs == 0 {
		opts.AudioDurationMs = file.AudioDurationMs
	}
	switch {
	case cfg.previewSet:
		ms := cfg.previewMs
		opts.PreviewMs = &ms
	case file.PreviewMs != nil:
		opts.PreviewMs = file.PreviewMs
	}

	if opts.OutPath == "" {
		return builder.Options{}, fmt.Errorf("no output path; pass --out")
	}
	if opts.BackgroundPath == "" {
		return builder.Options{}, fmt.Errorf("no background image; pass --background")
	}
	return opts, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelInfo
	}
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	result, err := builder.Run(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "WARNING:", w.String())
	}
	fmt.Printf("Wrote %s (difficulties=%d, warnings=%d)\n",
		result.ArchivePath, len(result.Difficulty), len(result.Warnings))
}
