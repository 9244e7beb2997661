package scoper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/taintgrid/internal/model"
)

// StatementMarker precedes the node id in the comment attached to a flow's
// anchor statement.
const StatementMarker = "statementId: "

// anchorFields are searched in order for the anchor statement.
var anchorFields = []model.Field{model.FieldModule, model.FieldMethods, model.FieldClasses}

// AttachStatementID tags the anchor statement of the node's first flow with a
// `// statementId: <id>` comment so its rendered line can be found later.
// It reports whether a statement was tagged.
func AttachStatementID(f *model.Fragments, flows []model.Flow, id int) bool {
	if len(flows) == 0 || flows[0].StatementSignature == "" {
		return false
	}
	method := anchorMethod(flows[0].StatementSignature)
	if method == "" {
		return false
	}

	pattern := regexp.QuoteMeta(method) + `\s*\(.*`
	if isWordByte(method[0]) {
		pattern = `\b` + pattern
	}
	re := regexp.MustCompile(pattern)
	for _, field := range anchorFields {
		text := f.Get(field)
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		tag := fmt.Sprintf(" // %s%d", StatementMarker, id)
		if loc[1] == len(text) {
			// The comment must not swallow whatever follows the slot the
			// fragment is rendered into.
			tag += "\n"
		}
		tagged := text[:loc[1]] + tag + text[loc[1]:]
		f.Set(field, tagged)
		return true
	}
	return false
}

// methodRefRegex captures the method name of a Jimple method reference
// `<pkg.Class: ret name(params)>`.
var methodRefRegex = regexp.MustCompile(`<[^<>]*?:\s*\S+\s+([^\s(]+)\(`)

// anchorMethod extracts the invoked method name from a statement signature.
// Signatures without a method reference fall back to the last
// whitespace-separated word up to its opening parenthesis.
func anchorMethod(signature string) string {
	if m := methodRefRegex.FindStringSubmatch(signature); m != nil {
		return m[1]
	}
	words := strings.Fields(signature)
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	if i := strings.IndexByte(last, '('); i >= 0 {
		last = last[:i]
	}
	return last
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
