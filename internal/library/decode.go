package library

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/taintgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fileRoot decodes the top-level blocks of a library file.
type fileRoot struct {
	Modules   []*hclNamedBlock `hcl:"module,block"`
	Templates []*hclNamedBlock `hcl:"template,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// hclNamedBlock is a labelled block whose body is decoded by hand.
type hclNamedBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var moduleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "pattern"},
		{Name: string(model.FieldImports)},
		{Name: string(model.FieldGlobals)},
		{Name: string(model.FieldModule)},
		{Name: string(model.FieldMethods)},
		{Name: string(model.FieldClasses)},
		{Name: string(model.FieldPermissions)},
		{Name: string(model.FieldComponents)},
		{Name: string(model.FieldViews)},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "flow"},
	},
}

var flowBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "statement_signature", Required: true},
		{Name: "class_name", Required: true},
		{Name: "method_signature", Required: true},
		{Name: "leaking"},
		{Name: "reachable"},
	},
}

var templateBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "source", Required: true},
		{Name: "manifest"},
		{Name: "layout"},
	},
}

// decodeModule turns a `module` block into a definition.
func decodeModule(block *hclNamedBlock, filePath string) (*model.Definition, hcl.Diagnostics) {
	content, diags := block.Body.Content(moduleBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	def := &model.Definition{
		Name:   block.Name,
		Source: model.NewFSInfo(filePath),
	}

	var raw string
	diags = append(diags, decodeAttr(content.Attributes["type"], cty.String, &raw)...)
	if t, err := model.ParseModuleType(raw); err != nil {
		diags = append(diags, attrError(content.Attributes["type"], block.Name, err))
	} else {
		def.Type = t
	}

	raw = ""
	diags = append(diags, decodeAttr(content.Attributes["pattern"], cty.String, &raw)...)
	if p, err := model.ParsePattern(raw); err != nil {
		diags = append(diags, attrError(content.Attributes["pattern"], block.Name, err))
	} else {
		def.Pattern = p
	}

	for _, field := range model.AllFields {
		attr, ok := content.Attributes[string(field)]
		if !ok {
			continue
		}
		snippets := []string{}
		diags = append(diags, decodeAttr(attr, cty.List(cty.String), &snippets)...)
		def.Content.Set(field, snippets)
	}

	for _, fb := range content.Blocks {
		flow, flowDiags := decodeFlow(fb)
		diags = append(diags, flowDiags...)
		if !flowDiags.HasErrors() {
			def.Flows = append(def.Flows, flow)
		}
	}

	return def, diags
}

func decodeFlow(block *hcl.Block) (model.Flow, hcl.Diagnostics) {
	var flow model.Flow
	content, diags := block.Body.Content(flowBodySchema)
	if diags.HasErrors() {
		return flow, diags
	}
	diags = append(diags, decodeAttr(content.Attributes["statement_signature"], cty.String, &flow.StatementSignature)...)
	diags = append(diags, decodeAttr(content.Attributes["class_name"], cty.String, &flow.ClassName)...)
	diags = append(diags, decodeAttr(content.Attributes["method_signature"], cty.String, &flow.MethodSignature)...)
	diags = append(diags, decodeAttr(content.Attributes["leaking"], cty.Bool, &flow.Leaking)...)
	diags = append(diags, decodeAttr(content.Attributes["reachable"], cty.Bool, &flow.Reachable)...)
	return flow, diags
}

// decodeTemplate turns a `template` block into a base template.
func decodeTemplate(block *hclNamedBlock, filePath string) (*model.Template, hcl.Diagnostics) {
	content, diags := block.Body.Content(templateBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}
	tpl := &model.Template{
		Name: block.Name,
		File: model.NewFSInfo(filePath),
	}
	diags = append(diags, decodeAttr(content.Attributes["source"], cty.List(cty.String), &tpl.Source)...)
	diags = append(diags, decodeAttr(content.Attributes["manifest"], cty.List(cty.String), &tpl.Manifest)...)
	diags = append(diags, decodeAttr(content.Attributes["layout"], cty.List(cty.String), &tpl.Layout)...)
	return tpl, diags
}

// decodeAttr evaluates an optional attribute, converts it to the wanted cty
// type and stores it in target. A missing or null attribute leaves target
// untouched.
func decodeAttr(attr *hcl.Attribute, want cty.Type, target any) hcl.Diagnostics {
	if attr == nil {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid value for %q", attr.Name),
			Detail:   fmt.Sprintf("Expected %s: %s.", want.FriendlyName(), err),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	if err := gocty.FromCtyValue(converted, target); err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Invalid value for %q", attr.Name),
			Detail:   err.Error(),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}
	return nil
}

func attrError(attr *hcl.Attribute, owner string, err error) *hcl.Diagnostic {
	d := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid definition %q", owner),
		Detail:   err.Error(),
	}
	if attr != nil {
		d.Subject = attr.Expr.Range().Ptr()
	}
	return d
}
