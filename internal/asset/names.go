package asset

import (
	"path"
	"strings"
)

// invalidNameChars are the characters no supported filesystem accepts
// in a filename. Each is replaced by an underscore.
const invalidNameChars = `<>:"/\|?*`

// SanitizeName replaces filesystem-unsafe characters with underscores
// and trims leading and trailing spaces and dots, which Windows
// silently strips and would otherwise break name uniqueness.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(invalidNameChars, r) {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " .")
}

// entryName normalizes a reference from a chart file to the flat,
// sanitized name an asset is stored and archived under: backslashes
// become slashes, directory components drop, unsafe characters go.
func entryName(ref string) string {
	return SanitizeName(path.Base(strings.ReplaceAll(ref, `\`, "/")))
}
