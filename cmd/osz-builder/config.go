package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML set definition. Any field given on
// the command line overrides the file value.
//
//	title: Merged Song
//	artist: Someone
//	creator: mapper
//	tags: electronic collab
//	background: bg.jpg
//	preview_ms: 32500
//	audio_duration_ms: 214000
//	auto_number: true
type fileConfig struct {
	Title           string `yaml:"title"`
	Artist          string `yaml:"artist"`
	Creator         string `yaml:"creator"`
	Source          string `yaml:"source"`
	Tags            string `yaml:"tags"`
	Background      string `yaml:"background"`
	Audio           string `yaml:"audio"`
	PreviewMs       *int   `yaml:"preview_ms"`
	AudioDurationMs int    `yaml:"audio_duration_ms"`
	AutoNumber      bool   `yaml:"auto_number"`
	Out             string `yaml:"out"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
