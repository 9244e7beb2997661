package scoper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/taintgrid/internal/model"
)

const (
	ScopeOpen  = "§"
	ScopeClose = "$"
)

var scopedIdentifierRegex = regexp.MustCompile(`§(.*?)\$`)

// scopedFields are the fields scoped identifiers are collected from and
// rewritten in.
var scopedFields = []model.Field{
	model.FieldGlobals,
	model.FieldModule,
	model.FieldMethods,
	model.FieldClasses,
	model.FieldComponents,
	model.FieldViews,
}

// Counter hands out identifier suffixes. The zero value starts at 0.
type Counter struct {
	next int
}

// Next returns the next suffix.
func (c *Counter) Next() int {
	n := c.next
	c.next++
	return n
}

// Uniquify renames every distinct scoped identifier of the fragments and the
// flows to name<suffix> and returns the mapping in first-seen order.
func Uniquify(f *model.Fragments, flows []model.Flow, counter *Counter) []Rename {
	var renames []Rename
	seen := make(map[string]bool)
	for _, field := range scopedFields {
		for _, m := range scopedIdentifierRegex.FindAllStringSubmatch(f.Get(field), -1) {
			if seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			renames = append(renames, Rename{From: m[1], To: m[1] + strconv.Itoa(counter.Next())})
		}
	}
	if len(renames) == 0 {
		return nil
	}

	pairs := make([]string, 0, 2*len(renames))
	for _, r := range renames {
		pairs = append(pairs, ScopeOpen+r.From+ScopeClose, r.To)
	}
	replacer := strings.NewReplacer(pairs...)

	for _, field := range scopedFields {
		f.Set(field, replacer.Replace(f.Get(field)))
	}
	for i := range flows {
		flows[i].ClassName = replacer.Replace(flows[i].ClassName)
		flows[i].MethodSignature = replacer.Replace(flows[i].MethodSignature)
	}
	return renames
}

// Rename records one identifier rewrite.
type Rename struct {
	From string
	To   string
}
