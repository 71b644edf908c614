// Package registry provides the loader registration table for the config
// dispatch pipeline.
//
// Each category header in a configuration document is served by exactly one
// Loader. Loaders are registered explicitly at startup, keyed by the header
// string they handle; the dispatcher never needs to know the full set in
// advance. By convention a loader for header H lives in the package
// github.com/vk/beamns/plugins/H — resolve failures name that package so a
// missing registration is easy to trace.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/beamns/namespace"
)

// PluginPathPrefix is the conventional package path prefix for loader
// plugins; the expected package for a header is PluginPathPrefix + header.
const PluginPathPrefix = "github.com/vk/beamns/plugins/"

// ErrNoLoader is returned by Resolve when no loader is registered for a header.
var ErrNoLoader = errors.New("no loader registered")

// Loader builds the objects for one category header. The info value is the
// header's block from the configuration document, opaque to everything but
// the loader itself.
type Loader interface {
	LoadObjs(ctx context.Context, info any) ([]namespace.Entry, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, info any) ([]namespace.Entry, error)

// LoadObjs implements Loader.
func (f LoaderFunc) LoadObjs(ctx context.Context, info any) ([]namespace.Entry, error) {
	return f(ctx, info)
}

// Plugin is implemented by packages that contribute loaders to a registry.
type Plugin interface {
	Register(r *Registry)
}

// Registry holds the header-to-loader table for one application instance.
type Registry struct {
	loaders map[string]Loader
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register binds a loader to a category header. Registering the same header
// twice is a programmer error.
func (r *Registry) Register(header string, l Loader) {
	if _, exists := r.loaders[header]; exists {
		panic(fmt.Sprintf("loader for header '%s' already registered", header))
	}
	slog.Debug("Registering loader.", "header", header)
	r.loaders[header] = l
}

// Resolve returns the loader registered for header. The error names the
// conventional plugin package so operators know what was expected.
func (r *Registry) Resolve(header string) (Loader, error) {
	l, ok := r.loaders[header]
	if !ok {
		return nil, fmt.Errorf("%w for header %q (expected plugin %q)",
			ErrNoLoader, header, PluginPathPrefix+header)
	}
	return l, nil
}

// Headers returns the registered headers, sorted for stable diagnostics.
func (r *Registry) Headers() []string {
	out := make([]string, 0, len(r.loaders))
	for h := range r.loaders {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
