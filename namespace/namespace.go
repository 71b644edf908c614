// Package namespace implements the insertion-ordered, name-addressable
// container that holds every object accumulated during startup. A Namespace
// is a live view: references handed out early observe entries added later.
package namespace

import (
	"errors"
	"fmt"
	"iter"
	"unicode"
)

// ErrUnknownName is returned by Get when no entry exists for the requested name.
var ErrUnknownName = errors.New("unknown name")

// ErrInvalidName is returned when an entry name is not a valid identifier.
var ErrInvalidName = errors.New("invalid name")

// Entry is a single named object, the unit loaders produce. Loaders return
// slices of entries rather than maps so that insertion order is well defined.
type Entry struct {
	Name  string
	Value any
}

// Namespace maps names to loaded objects, preserving insertion order.
// Overwriting an existing name keeps its original position.
//
// A Namespace is not synchronized. The expected lifecycle is that a single
// initializing goroutine populates it before any other goroutine reads it;
// concurrent mutation afterwards must be serialized by the caller.
type Namespace struct {
	names  []string
	values map[string]any
}

// New creates an empty Namespace and seeds it with the given entries.
func New(entries ...Entry) (*Namespace, error) {
	ns := &Namespace{values: make(map[string]any)}
	if err := ns.SetMany(entries); err != nil {
		return nil, err
	}
	return ns, nil
}

// Set inserts or overwrites a single entry. The name must be a valid
// identifier so that the namespace stays attribute-addressable.
func (ns *Namespace) Set(name string, value any) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, exists := ns.values[name]; !exists {
		ns.names = append(ns.names, name)
	}
	ns.values[name] = value
	return nil
}

// SetMany inserts or overwrites each entry in order. On the first invalid
// name it stops and returns the error; earlier entries remain applied.
func (ns *Namespace) SetMany(entries []Entry) error {
	for _, e := range entries {
		if err := ns.Set(e.Name, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// Get looks up an object by name. Absent names produce an error wrapping
// ErrUnknownName.
func (ns *Namespace) Get(name string) (any, error) {
	v, ok := ns.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return v, nil
}

// Has reports whether an entry exists for name.
func (ns *Namespace) Has(name string) bool {
	_, ok := ns.values[name]
	return ok
}

// Len returns the number of entries.
func (ns *Namespace) Len() int {
	return len(ns.names)
}

// Names returns the entry names in insertion order.
func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.names))
	copy(out, ns.names)
	return out
}

// Values returns a restartable sequence over the objects currently held, in
// insertion order. The sequence reads the live namespace each time it is
// ranged over, not a snapshot taken when Values was called.
func (ns *Namespace) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, name := range ns.names {
			if !yield(ns.values[name]) {
				return
			}
		}
	}
}

// Entries returns a restartable sequence of (name, object) pairs in
// insertion order, reading the live namespace like Values.
func (ns *Namespace) Entries() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range ns.names {
			if !yield(name, ns.values[name]) {
				return
			}
		}
	}
}

// validName reports whether s is usable as an attribute-style identifier.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
