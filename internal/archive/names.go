package archive

import (
	"fmt"
	"strings"

	"osz-builder/internal/asset"
)

// EntryName derives the archive entry name of one difficulty from the
// overlay metadata and its (possibly renamed) version.
func EntryName(artist, title, creator, version string) string {
	return asset.SanitizeName(fmt.Sprintf("%s - %s (%s) [%s].osu", artist, title, creator, version))
}

// uniqueName returns name, or name with a -1, -2, ... suffix before the
// extension when it is already taken. Callers iterate in input order,
// so suffixes are assigned deterministically.
func uniqueName(name string, used map[string]struct{}) string {
	if _, ok := used[name]; !ok {
		used[name] = struct{}{}
		return name
	}
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	for n := 1; ; n++ {
		alt := fmt.Sprintf("%s-%d%s", base, n, ext)
		if _, ok := used[alt]; !ok {
			used[alt] = struct{}{}
			return alt
		}
	}
}
