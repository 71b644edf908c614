// Package cache implements the load cache: the owner of the namespace that
// accumulates every object produced during startup. On construction the
// namespace is installed into a module table under the caller's module path
// and under the fixed `<package>.db` alias, so downstream code can resolve
// the aggregated objects through either spelling.
package cache

import (
	"errors"
	"strings"

	"github.com/vk/beamns/modtable"
	"github.com/vk/beamns/namespace"
)

// ErrBadModulePath is returned by New for module paths that are empty or
// contain a segment that is not a valid identifier.
var ErrBadModulePath = errors.New("bad module path")

// Cache accumulates objects in one namespace and knows how to persist a
// human-readable manifest of its contents.
type Cache struct {
	table        *modtable.Table
	module       string
	manifestRoot string
	ns           *namespace.Namespace
	seed         []namespace.Entry
}

// Option configures a Cache during New.
type Option func(*Cache)

// WithManifestRoot sets the directory the manifest file is written under.
// Without it, WriteManifest is a no-op.
func WithManifestRoot(dir string) Option {
	return func(c *Cache) { c.manifestRoot = dir }
}

// WithEntries seeds the namespace with initial objects.
func WithEntries(entries ...namespace.Entry) Option {
	return func(c *Cache) { c.seed = append(c.seed, entries...) }
}

// New builds a Cache for the given dotted module path and installs its
// namespace into the table under both the primary path and the alias
// `<first segment>.db`. Both slots hold the same namespace instance, so a
// later Add is visible through either path without re-installation.
//
// Installation overwrites occupied slots; see modtable.Install.
func New(table *modtable.Table, module string, opts ...Option) (*Cache, error) {
	if err := checkModulePath(module); err != nil {
		return nil, err
	}
	c := &Cache{table: table, module: module}
	for _, opt := range opts {
		opt(c)
	}
	ns, err := namespace.New(c.seed...)
	if err != nil {
		return nil, err
	}
	c.ns = ns
	c.seed = nil

	table.Install(module, ns)
	table.Install(aliasPath(module), ns)
	return c, nil
}

// Namespace returns the cache's live namespace.
func (c *Cache) Namespace() *namespace.Namespace {
	return c.ns
}

// Module returns the primary module path the namespace is installed under.
func (c *Cache) Module() string {
	return c.module
}

// Add inserts or overwrites objects in the namespace. Callers that resolved
// the namespace before this call observe the new objects immediately.
func (c *Cache) Add(entries ...namespace.Entry) error {
	return c.ns.SetMany(entries)
}

// aliasPath derives the fixed secondary path: the owning package (first
// dotted segment) with a ".db" suffix.
func aliasPath(module string) string {
	pkg, _, _ := strings.Cut(module, ".")
	return pkg + ".db"
}

func checkModulePath(module string) error {
	if module == "" {
		return ErrBadModulePath
	}
	for _, seg := range strings.Split(module, ".") {
		if seg == "" {
			return ErrBadModulePath
		}
	}
	return nil
}
