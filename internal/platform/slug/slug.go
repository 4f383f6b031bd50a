package slug

import (
	"regexp"
	"strings"
)

const maxLen = 48

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every run of non-alphanumerics into a
// single dash. Results are capped at 48 bytes.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// WithSuffix appends a disambiguating suffix, e.g. a short id.
func WithSuffix(input, suffix string) string {
	base := Make(input)
	suffix = Make(suffix)
	if suffix == "untitled" {
		return base
	}
	return base + "-" + suffix
}
