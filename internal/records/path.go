package records

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// DefaultImageExt is used when an upload's filename has no extension.
const DefaultImageExt = "jpg"

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at both ends. An empty
// result is replaced by fallback.
func Slugify(s, fallback string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	prevWasSep := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevWasSep = false
			continue
		}
		if !prevWasSep && b.Len() > 0 {
			b.WriteRune('-')
		}
		prevWasSep = true
	}
	result := strings.TrimRight(b.String(), "-")
	if result == "" {
		return fallback
	}
	return result
}

// ImagePath builds "<dir>/<slug>-<unix millis>.<ext>" for an upload named
// filename. The extension keeps its original case.
func ImagePath(dir, subject, fallback, filename string, now time.Time) string {
	ext := strings.TrimPrefix(path.Ext(path.Base(strings.ReplaceAll(filename, `\`, "/"))), ".")
	if ext == "" {
		ext = DefaultImageExt
	}
	name := fmt.Sprintf("%s-%d.%s", Slugify(subject, fallback), now.UnixMilli(), ext)
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}
