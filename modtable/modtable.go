// Package modtable is the process-wide module-resolution table. It plays the
// role an interpreter's import table would: a Namespace installed under a
// dotted path can be resolved later by any code that knows the path.
//
// The table is an explicit value rather than ambient state so that tests can
// construct isolated instances; production code shares the package-level
// Default table. The intended lifecycle is install-once at startup, resolve
// many times afterwards.
package modtable

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/beamns/namespace"
)

// ErrNotInstalled is returned by Resolve for paths with no installed namespace.
var ErrNotInstalled = errors.New("no namespace installed")

// Table maps dotted module paths to installed namespaces.
type Table struct {
	mu   sync.RWMutex
	mods map[string]*namespace.Namespace
}

// Default is the process-wide table used when no explicit instance is injected.
var Default = New()

// New creates an empty table.
func New() *Table {
	return &Table{mods: make(map[string]*namespace.Namespace)}
}

// Install binds a namespace to a module path. An occupied slot is silently
// overwritten: whatever it previously resolved to is shadowed for the rest of
// the process. That trade-off is deliberate — the aggregated namespace must
// win over anything sharing its name.
func (t *Table) Install(path string, ns *namespace.Namespace) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mods[path] = ns
}

// Resolve returns the namespace installed under path.
func (t *Table) Resolve(path string) (*namespace.Namespace, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ns, ok := t.mods[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInstalled, path)
	}
	return ns, nil
}

// Paths returns the installed module paths, sorted for stable diagnostics.
func (t *Table) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.mods))
	for p := range t.mods {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
