package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectInputs expands the CLI inputs into an ordered list of .osu
// file paths. A single directory input is scanned non-recursively for
// .osu files in name order; explicit file arguments keep the order the
// caller gave, which becomes the set order.
func collectInputs(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files")
	}
	if len(inputs) == 1 {
		info, err := os.Stat(inputs[0])
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputs[0], err)
		}
		if info.IsDir() {
			return scanDir(inputs[0])
		}
	}
	for _, p := range inputs {
		if !isChartPath(p) {
			return nil, fmt.Errorf("%s is not a .osu file", p)
		}
	}
	return inputs, nil
}

func scanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isChartPath(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .osu files in %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

func isChartPath(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".osu")
}
