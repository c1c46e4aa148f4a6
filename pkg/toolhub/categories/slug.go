package categories

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRegex   = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a category name:
// lowercase, runs of non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = hyphenRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
