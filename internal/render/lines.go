package render

import (
	"regexp"
	"strings"

	"github.com/vk/taintgrid/internal/javasplit"
	"github.com/vk/taintgrid/internal/scoper"
)

var statementRegex = regexp.MustCompile(regexp.QuoteMeta(scoper.StatementMarker) + `(\d+)`)

// LineLookup maps every statement id marked in the units to the 1-based
// line it sits on. A later marker for the same id wins.
func LineLookup(units []javasplit.Unit) map[string]int {
	lookup := make(map[string]int)
	for _, u := range units {
		for _, loc := range statementRegex.FindAllStringSubmatchIndex(u.Content, -1) {
			id := u.Content[loc[2]:loc[3]]
			lookup[id] = strings.Count(u.Content[:loc[0]], "\n") + 1
		}
	}
	return lookup
}
