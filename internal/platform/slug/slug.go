package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make joins the non-empty parts into one lower-case, dash-separated key.
// It returns "" when nothing usable is left.
func Make(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		s := strings.ToLower(strings.TrimSpace(part))
		s = strings.Trim(nonAlphaNum.ReplaceAllString(s, "-"), "-")
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "-")
}
