package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// XML re-indents an XML document, two spaces per level. Namespace prefixes
// are kept as written. Elements without children are self-closed and
// elements holding only text stay on one line. Whitespace-only text is
// dropped. An empty document formats to the empty string.
func XML(src string) (string, error) {
	tokens, err := rawTokens(src)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	depth := 0
	indent := func() { b.WriteString(strings.Repeat(indentUnit, depth)) }

	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i].(type) {
		case xml.ProcInst:
			fmt.Fprintf(&b, "<?%s %s?>\n", tok.Target, strings.TrimSpace(string(tok.Inst)))
		case xml.Directive:
			indent()
			fmt.Fprintf(&b, "<!%s>\n", tok)
		case xml.Comment:
			indent()
			fmt.Fprintf(&b, "<!--%s-->\n", tok)
		case xml.CharData:
			indent()
			b.WriteString(textEscaper.Replace(string(tok)))
			b.WriteByte('\n')
		case xml.EndElement:
			depth--
			indent()
			fmt.Fprintf(&b, "</%s>\n", qualified(tok.Name))
		case xml.StartElement:
			indent()
			b.WriteByte('<')
			b.WriteString(qualified(tok.Name))
			for _, a := range tok.Attr {
				fmt.Fprintf(&b, ` %s="%s"`, qualified(a.Name), attrEscaper.Replace(a.Value))
			}

			next := peek(tokens, i+1)
			if _, ok := next.(xml.EndElement); ok {
				b.WriteString(" />\n")
				i++
				continue
			}
			if text, ok := next.(xml.CharData); ok {
				if _, ok := peek(tokens, i+2).(xml.EndElement); ok {
					fmt.Fprintf(&b, ">%s</%s>\n", textEscaper.Replace(string(text)), qualified(tok.Name))
					i += 2
					continue
				}
			}
			b.WriteString(">\n")
			depth++
		}
	}
	return b.String(), nil
}

// rawTokens decodes the document without namespace resolution and drops
// whitespace-only text. RawToken does not match end elements, so nesting is
// checked here.
func rawTokens(src string) ([]xml.Token, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	var (
		tokens []xml.Token
		open   []string
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			trimmed := bytes.TrimSpace(t)
			if len(trimmed) == 0 {
				continue
			}
			tok = xml.CharData(trimmed)
		case xml.StartElement:
			open = append(open, qualified(t.Name))
		case xml.EndElement:
			name := qualified(t.Name)
			if len(open) == 0 || open[len(open)-1] != name {
				return nil, fmt.Errorf("failed to decode xml: unexpected </%s> on line %d", name, lineOf(src, dec.InputOffset()))
			}
			open = open[:len(open)-1]
		}
		tokens = append(tokens, xml.CopyToken(tok))
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("failed to decode xml: element <%s> is never closed", open[len(open)-1])
	}
	return tokens, nil
}

func peek(tokens []xml.Token, i int) xml.Token {
	if i < len(tokens) {
		return tokens[i]
	}
	return nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func lineOf(src string, offset int64) int {
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	return strings.Count(src[:offset], "\n") + 1
}
