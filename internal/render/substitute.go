package render

import (
	"regexp"

	"github.com/vk/taintgrid/internal/placeholder"
)

var placeholderRegex = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Substitute replaces every placeholder that has a value and leaves the rest
// as they are. Values are inserted literally and never rescanned.
func Substitute(text string, values placeholder.Values) string {
	return placeholderRegex.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholderRegex.FindStringSubmatch(m)[1]
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
}

// Strip removes every remaining placeholder.
func Strip(text string) string {
	return placeholderRegex.ReplaceAllString(text, "")
}

// HasPlaceholders reports whether text still holds a placeholder.
func HasPlaceholders(text string) bool {
	return placeholderRegex.MatchString(text)
}
