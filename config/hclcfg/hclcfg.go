// Package hclcfg is the HCL implementation of the config.Loader interface.
//
// Each top-level block is one section: the block type is the category header
// and the block's attributes, evaluated as literals, become the info block
// as a map[string]any. Block order in the file is preserved.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/beamns/config"
	"github.com/vk/beamns/internal/ctxlog"
)

// Loader reads an HCL configuration file into the agnostic document model.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file at path. Top-level attributes and labeled blocks are
// rejected; the file must consist of plain `header { ... }` blocks.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config %s: %w", path, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("config %s: unexpected body type %T", path, file.Body)
	}
	if len(body.Attributes) > 0 {
		return nil, fmt.Errorf("config %s: top-level attributes are not allowed", path)
	}

	doc := &config.Document{}
	seen := make(map[string]struct{})
	for _, block := range body.Blocks {
		header := block.Type
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("config %s: block %q must not have labels", path, header)
		}
		if _, dup := seen[header]; dup {
			return nil, fmt.Errorf("config %s: duplicate header %q at %s", path, header, block.TypeRange)
		}
		seen[header] = struct{}{}

		info, err := blockInfo(block)
		if err != nil {
			return nil, fmt.Errorf("config %s: header %q: %w", path, header, err)
		}
		doc.Sections = append(doc.Sections, config.Section{Header: header, Info: info})
	}

	logger.Debug("HCL config loaded.", "path", path, "sections", len(doc.Sections))
	return doc, nil
}

// blockInfo flattens a block into a map[string]any: attributes evaluated as
// literals plus nested unlabeled blocks flattened recursively.
func blockInfo(block *hclsyntax.Block) (map[string]any, error) {
	info := make(map[string]any)
	for name, attr := range block.Body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		info[name] = native
	}
	for _, nested := range block.Body.Blocks {
		if len(nested.Labels) > 0 {
			return nil, fmt.Errorf("nested block %q must not have labels", nested.Type)
		}
		nestedInfo, err := blockInfo(nested)
		if err != nil {
			return nil, fmt.Errorf("nested block %q: %w", nested.Type, err)
		}
		info[nested.Type] = nestedInfo
	}
	return info, nil
}
