// Package static is the loader plugin for the "static" category header: it
// turns literal name→value pairs written directly in the config file into
// namespace objects. Useful for constants and flags that belong in the
// aggregated namespace but need no construction logic.
package static

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/beamns/namespace"
	"github.com/vk/beamns/registry"
)

// Plugin implements the registry.Plugin interface for this package.
type Plugin struct{}

// Register binds the loader under the "static" header.
func (Plugin) Register(r *registry.Registry) {
	r.Register("static", registry.LoaderFunc(LoadObjs))
}

// LoadObjs expects info to be a mapping from name to literal value. Names
// are emitted in sorted order so the namespace layout is reproducible.
func LoadObjs(ctx context.Context, info any) ([]namespace.Entry, error) {
	mapping, ok := info.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("static: info must be a mapping of name to value, got %T", info)
	}

	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]namespace.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, namespace.Entry{Name: name, Value: mapping[name]})
	}
	return entries, nil
}
