// Package manifest reads the declared header fields of an extension from
// its HCL manifest file. It implements the host's metadata-extraction
// contract over the same HCL toolchain the rest of the system uses.
package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// header maps manifest attribute names to the canonical header keys the
// host vocabulary uses.
var header = map[string]string{
	"name":        "Name",
	"version":     "Version",
	"description": "Description",
	"author":      "Author",
	"uri":         "URI",
	"text_domain": "TextDomain",
}

var manifestSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "extension"}},
}

var extensionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name", Required: true},
		{Name: "version", Required: true},
		{Name: "description"},
		{Name: "author"},
		{Name: "uri"},
		{Name: "text_domain"},
	},
}

// Reader implements host.MetadataReader over HCL manifest files.
type Reader struct{}

// Read parses the manifest at sourceFile and returns its declared header
// keys. Optional attributes that are not declared are simply absent from
// the result.
func (Reader) Read(sourceFile string) (map[string]string, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(sourceFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: parsing %s: %w", sourceFile, diags)
	}

	content, diags := file.Body.Content(manifestSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: reading %s: %w", sourceFile, diags)
	}
	if len(content.Blocks) == 0 {
		return nil, fmt.Errorf("manifest: %s has no extension block", sourceFile)
	}

	block, diags := content.Blocks[0].Body.Content(extensionSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("manifest: reading extension block in %s: %w", sourceFile, diags)
	}

	meta := make(map[string]string, len(block.Attributes))
	for name, attr := range block.Attributes {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("manifest: evaluating %q in %s: %w", name, sourceFile, diags)
		}
		str, err := convert.Convert(value, cty.String)
		if err != nil {
			return nil, fmt.Errorf("manifest: attribute %q in %s is not a string: %w", name, sourceFile, err)
		}
		meta[header[name]] = str.AsString()
	}
	return meta, nil
}
