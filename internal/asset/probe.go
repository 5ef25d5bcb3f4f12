package asset

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"osz-builder/internal/chart"
)

// ProbeBackground decodes just the header of the background image to
// confirm it is a readable png or jpeg and to report its dimensions.
// An undecodable image is a warning, never an error; the game may
// still cope with it.
func ProbeBackground(a *Asset) (width, height int, warnings []chart.Warning) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil {
		return 0, 0, []chart.Warning{{
			Stage:   "resolve",
			Entity:  a.Name,
			Message: "background does not decode as png or jpeg: " + err.Error(),
		}}
	}
	if cfg.Width < minBackgroundEdge || cfg.Height < minBackgroundEdge {
		warnings = append(warnings, chart.Warning{
			Stage:   "resolve",
			Entity:  a.Name,
			Message: fmt.Sprintf("background is %dx%d, smaller than the %dpx the game scales well", cfg.Width, cfg.Height, minBackgroundEdge),
		})
	}
	return cfg.Width, cfg.Height, warnings
}

// minBackgroundEdge is the smallest edge the song-select view scales
// without visible blur.
const minBackgroundEdge = 160
