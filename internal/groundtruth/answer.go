package groundtruth

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/taintgrid/internal/flow"
	"github.com/vk/taintgrid/internal/model"
)

// Header is the XML declaration every document starts with.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Answer is the root element of a ground-truth document.
type Answer struct {
	XMLName xml.Name `xml:"answer"`
	Flows   Flows    `xml:"flows"`
}

// Flows lists the expected flows.
type Flows struct {
	Flow []Flow `xml:"flow"`
}

// Flow is one expected source-to-sink flow.
type Flow struct {
	Reference  []Reference `xml:"reference"`
	Attributes Attributes  `xml:"attributes"`
}

// Reference is one end of a flow.
type Reference struct {
	Type      string    `xml:"type,attr"`
	Statement Statement `xml:"statement"`
	Method    string    `xml:"method"`
	ClassName string    `xml:"classname"`
	App       App       `xml:"app"`
}

// Statement locates the anchor statement of a flow end.
type Statement struct {
	Full       string `xml:"statementfull"`
	Generic    string `xml:"statementgeneric"`
	LineNumber int    `xml:"linenumber"`
}

// App identifies the analysed application.
type App struct {
	File   string `xml:"file"`
	Hashes []Hash `xml:"hashes>hash"`
}

// Hash is one content hash of the application file.
type Hash struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

// Attributes holds the labels of a flow.
type Attributes struct {
	Attribute []Attribute `xml:"attribute"`
}

// Attribute is one named boolean label.
type Attribute struct {
	Name  string `xml:"name"`
	Value bool   `xml:"value"`
}

// Build creates the document for a set of connections. lines maps statement
// ids to line numbers; a flow end without a line is reported on line 0.
func Build(project string, conns []flow.Connection, lines map[string]int, app Artifact) *Answer {
	appElem := app.element()
	doc := &Answer{}
	for _, c := range conns {
		doc.Flows.Flow = append(doc.Flows.Flow, Flow{
			Reference: []Reference{
				reference("from", project, c.From, lines, appElem),
				reference("to", project, c.To, lines, appElem),
			},
			Attributes: Attributes{Attribute: []Attribute{
				{Name: "leaking", Value: c.To.Leaking},
				{Name: "reachable", Value: c.To.Reachable},
			}},
		})
	}
	return doc
}

func reference(kind, project string, f model.Flow, lines map[string]int, app App) Reference {
	return Reference{
		Type: kind,
		Statement: Statement{
			Generic:    InsertProject(f.StatementSignature, project, f.ClassName),
			LineNumber: lines[strconv.Itoa(f.ID)],
		},
		Method:    fmt.Sprintf("<%s.%s: %s>", project, f.ClassName, f.MethodSignature),
		ClassName: project + "." + f.ClassName,
		App:       app,
	}
}

// Marshal renders the document with its XML declaration.
func (a *Answer) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ground truth: %w", err)
	}
	out := make([]byte, 0, len(Header)+len(body)+1)
	out = append(out, Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}

var projectRegex = regexp.MustCompile(`\{\{\s*project\s*\}\}`)

// InsertProject qualifies a generic statement: the class name is inserted
// before the first colon and the project placeholder replaced by the project
// name. Statements without the placeholder are returned unchanged.
func InsertProject(statement, project, className string) string {
	if !projectRegex.MatchString(statement) {
		return statement
	}
	if i := strings.IndexByte(statement, ':'); i >= 0 {
		statement = statement[:i] + "." + className + statement[i:]
	}
	return projectRegex.ReplaceAllLiteralString(statement, project)
}
