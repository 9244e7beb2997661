package tmc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	numberRegex     = regexp.MustCompile(`^(.*?)(\d+)$`)
	groupingRegex   = regexp.MustCompile(`^[()]+$`)
)

// Normalize trims a configuration and collapses whitespace runs into single
// spaces.
func Normalize(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Tokenize splits a configuration into tokens. Every parenthesis becomes a
// token of its own, even when written without surrounding whitespace.
func Tokenize(s string) []string {
	var tokens []string
	for _, field := range strings.Fields(s) {
		start := 0
		for i, r := range field {
			if r != '(' && r != ')' {
				continue
			}
			if i > start {
				tokens = append(tokens, field[start:i])
			}
			tokens = append(tokens, string(r))
			start = i + 1
		}
		if start < len(field) {
			tokens = append(tokens, field[start:])
		}
	}
	return tokens
}

// IsGrouping reports whether a token consists solely of parentheses.
func IsGrouping(token string) bool {
	return groupingRegex.MatchString(token)
}

// Reference is a parsed module token.
type Reference struct {
	Name   string
	Number int
}

// ParseReference splits a token into module name and trailing number. A token
// without digits has number 0.
func ParseReference(token string) Reference {
	m := numberRegex.FindStringSubmatch(token)
	if m == nil || m[1] == "" {
		return Reference{Name: token}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Unreachable for any realistic digit run; keep the token intact.
		return Reference{Name: token}
	}
	return Reference{Name: m[1], Number: n}
}

// Split separates the template name from the module tokens.
func Split(tokens []string) (template string, modules []string) {
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], tokens[1:]
}

// StripNumbers returns the configuration with every module number removed.
// Grammar verification works on this form.
func StripNumbers(tokens []string) string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if IsGrouping(tok) {
			out = append(out, tok)
			continue
		}
		out = append(out, ParseReference(tok).Name)
	}
	return strings.Join(out, " ")
}

// CountModules counts module tokens per name, ignoring numbers and grouping
// tokens.
func CountModules(tokens []string) (counts map[string]int, total int) {
	counts = make(map[string]int)
	for _, tok := range tokens {
		if IsGrouping(tok) {
			continue
		}
		counts[ParseReference(tok).Name]++
		total++
	}
	return counts, total
}
