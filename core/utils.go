package core

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// SanitizeString trims `s`, strips any markup and escapes what remains.
// User-provided free text goes through this before storage.
func SanitizeString(s string) string {
	return strictPolicy.Sanitize(strings.TrimSpace(s))
}
