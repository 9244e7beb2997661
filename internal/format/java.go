package format

import "strings"

const indentUnit = "  "

// Java re-indents Java source by brace depth, two spaces per level. Trailing
// whitespace is trimmed, leading and trailing blank lines are dropped and
// runs of blank lines collapse to one. Braces inside string, character and
// comment literals are ignored.
func Java(src string) string {
	var (
		b       strings.Builder
		lx      javaLexer
		depth   int
		pending bool
	)
	for _, raw := range strings.Split(src, "\n") {
		if lx.inTextBlock {
			// Text block lines are content; keep them verbatim.
			b.WriteString(strings.TrimRight(raw, " \t\r"))
			b.WriteByte('\n')
			_, opens, closes := lx.scan(raw)
			depth = max(depth+opens-closes, 0)
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('\n')
			pending = false
		}

		continuation := lx.inComment
		leading, opens, closes := lx.scan(line)
		indent := max(depth-leading, 0)
		b.WriteString(strings.Repeat(indentUnit, indent))
		if continuation && strings.HasPrefix(line, "*") {
			b.WriteByte(' ')
		}
		b.WriteString(line)
		b.WriteByte('\n')
		depth = max(depth+opens-closes, 0)
	}
	return b.String()
}

// javaLexer tracks the literal and comment state that spans lines.
type javaLexer struct {
	inComment   bool
	inTextBlock bool
}

// scan counts the braces of one line that belong to code. leading is the
// number of closing braces before the first other code character.
func (lx *javaLexer) scan(line string) (leading, opens, closes int) {
	atStart := true
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case lx.inComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				lx.inComment = false
				i++
			}
			continue
		case lx.inTextBlock:
			if strings.HasPrefix(line[i:], `"""`) {
				lx.inTextBlock = false
				i += 2
			} else if c == '\\' {
				i++
			}
			continue
		}

		switch c {
		case ' ', '\t':
			continue
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return leading, opens, closes
			}
			if i+1 < len(line) && line[i+1] == '*' {
				lx.inComment = true
				i++
				continue
			}
		case '"':
			if strings.HasPrefix(line[i:], `"""`) {
				lx.inTextBlock = true
				i += 2
			} else {
				i = skipQuoted(line, i, '"')
			}
		case '\'':
			i = skipQuoted(line, i, '\'')
		case '{':
			opens++
		case '}':
			closes++
			if atStart {
				leading++
				continue
			}
		}
		atStart = false
	}
	return leading, opens, closes
}

// skipQuoted returns the index of the quote closing the literal opened at i,
// or the last index of the line if the literal is unterminated.
func skipQuoted(line string, i int, quote byte) int {
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(line) - 1
}
