// Package config defines the format-agnostic model of a configuration
// document and the Loader interface that format-specific packages
// (yamlcfg, hclcfg) implement.
package config

import "context"

// Section is one top-level category in a configuration document: a header
// naming the category and an opaque info block only the matching loader
// plugin understands.
type Section struct {
	Header string
	Info   any
}

// Document is the parsed configuration: an ordered list of sections.
// Documents are loaded once per run and never mutated afterwards.
type Document struct {
	Sections []Section
}

// Headers returns the section headers in document order.
func (d *Document) Headers() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Header
	}
	return out
}

// Loader is the interface for a format-specific configuration loader. It
// reads the file at path and translates it into the agnostic Document.
type Loader interface {
	Load(ctx context.Context, path string) (*Document, error)
}
