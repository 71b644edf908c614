// Package yamlcfg is the YAML implementation of the config.Loader interface.
//
// It decodes through yaml.Node rather than straight into a map so that the
// document's section order survives parsing — Go maps would scramble it and
// the dispatch pipeline guarantees document-order processing.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/beamns/config"
	"github.com/vk/beamns/internal/ctxlog"
)

// Loader reads a YAML configuration file into the agnostic document model.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file at path. The top-level value must be a mapping from
// header to info block, or a sequence whose first element is such a mapping
// (config files are commonly written as a one-element list; only the first
// top-level structural element is used).
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("config %s: empty document", path)
	}

	top := root.Content[0]
	if top.Kind == yaml.SequenceNode {
		if len(top.Content) == 0 {
			return nil, fmt.Errorf("config %s: empty top-level sequence", path)
		}
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config %s: top-level element must be a mapping, got %s", path, kindName(top.Kind))
	}

	doc := &config.Document{}
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(top.Content); i += 2 {
		keyNode, valNode := top.Content[i], top.Content[i+1]
		var header string
		if err := keyNode.Decode(&header); err != nil {
			return nil, fmt.Errorf("config %s: header at line %d is not a string: %w", path, keyNode.Line, err)
		}
		if _, dup := seen[header]; dup {
			return nil, fmt.Errorf("config %s: duplicate header %q at line %d", path, header, keyNode.Line)
		}
		seen[header] = struct{}{}

		var info any
		if err := valNode.Decode(&info); err != nil {
			return nil, fmt.Errorf("config %s: bad info block for header %q: %w", path, header, err)
		}
		doc.Sections = append(doc.Sections, config.Section{Header: header, Info: info})
	}

	logger.Debug("YAML config loaded.", "path", path, "sections", len(doc.Sections))
	return doc, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
