// Package dispatch routes each section of a configuration document to its
// registered loader and aggregates whatever the loaders produce.
//
// Dispatch never aborts: a header whose loader is missing, returns an error,
// or panics contributes an empty collection and the pipeline moves on to the
// next header. Failure detail goes to the log stream only — the result maps
// every header to its (possibly empty) objects, and merging them into a
// cache is the caller's explicit next step.
package dispatch

import (
	"context"
	"fmt"

	"github.com/vk/beamns/config"
	"github.com/vk/beamns/internal/ctxlog"
	"github.com/vk/beamns/namespace"
	"github.com/vk/beamns/registry"
)

// Result holds per-header object collections in document order.
type Result struct {
	headers []string
	objs    map[string][]namespace.Entry
}

// Headers returns the processed headers in document order. Every header of
// the source document is present, including the ones that failed.
func (r *Result) Headers() []string {
	out := make([]string, len(r.headers))
	copy(out, r.headers)
	return out
}

// Objects returns the entries a header contributed. Empty for headers whose
// loader was missing or failed, and for unknown headers.
func (r *Result) Objects(header string) []namespace.Entry {
	return r.objs[header]
}

// All returns every contributed entry, flattened in document order.
func (r *Result) All() []namespace.Entry {
	var out []namespace.Entry
	for _, h := range r.headers {
		out = append(out, r.objs[h]...)
	}
	return out
}

// Load processes the document's sections strictly in order. Each header is
// resolved against the registry and its loader invoked in isolation; no
// state is shared between invocations except the logger carried in ctx.
func Load(ctx context.Context, reg *registry.Registry, doc *config.Document) *Result {
	logger := ctxlog.FromContext(ctx)
	res := &Result{objs: make(map[string][]namespace.Entry)}

	for _, section := range doc.Sections {
		header := section.Header
		res.headers = append(res.headers, header)
		res.objs[header] = nil

		loader, err := reg.Resolve(header)
		if err != nil {
			logger.Warn("Skipping config section: no loader for header.",
				"header", header, "error", err)
			continue
		}

		objs, err := invoke(ctx, loader, section.Info)
		if err != nil {
			logger.Error("Skipping config section: loader failed.",
				"header", header, "error", err)
			continue
		}
		res.objs[header] = objs
		logger.Debug("Config section loaded.", "header", header, "objects", len(objs))
	}
	return res
}

// invoke calls the loader, converting a panic into an error so one broken
// plugin cannot take down the whole pipeline.
func invoke(ctx context.Context, l registry.Loader, info any) (objs []namespace.Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			objs = nil
			err = fmt.Errorf("loader panicked: %v", r)
		}
	}()
	return l.LoadObjs(ctx, info)
}
