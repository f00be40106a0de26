package normalize

import (
	"regexp"
	"strings"
)

// RecencyPlaceholder is what demonstrative references become when no
// concrete descriptor is known. The response parser understands the same
// convention when the model echoes it back as a target.
const RecencyPlaceholder = "the most recent shape"

var demonstrative = regexp.MustCompile(`(?i)\b(this|that)\b`)

// ResolveReferences rewrites demonstrative references ("this", "that") to
// the recency placeholder. When recent shape descriptors are supplied the
// placeholder is substituted with the most recent descriptor instead, so
// "make that bigger" after drawing a circle becomes "make the circle
// bigger". Pure string transform; never fails.
func ResolveReferences(text string, recentShapes []string) string {
	if text == "" {
		return ""
	}
	resolved := demonstrative.ReplaceAllString(text, RecencyPlaceholder)

	if len(recentShapes) > 0 {
		last := recentShapes[len(recentShapes)-1]
		resolved = strings.ReplaceAll(resolved, RecencyPlaceholder, "the "+last)
	}
	return resolved
}
