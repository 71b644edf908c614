// Package beamns aggregates dynamically loaded objects — facility device
// handles, user utilities, externally fetched records — into one namespace
// that downstream code resolves by module path, driven by a declarative
// configuration file. One broken config section is logged and skipped; it
// never aborts the rest of the load.
package beamns

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/beamns/cache"
	"github.com/vk/beamns/config"
	"github.com/vk/beamns/config/yamlcfg"
	"github.com/vk/beamns/dispatch"
	"github.com/vk/beamns/internal/ctxlog"
	"github.com/vk/beamns/modtable"
	"github.com/vk/beamns/plugins/static"
	"github.com/vk/beamns/registry"
)

// builtinPlugins is the definitive list of loader plugins compiled into the
// default registry. Applications with their own loaders pass an explicit
// Registry instead.
var builtinPlugins = []registry.Plugin{
	static.Plugin{},
}

// Options configures a top-level Load.
type Options struct {
	// Module is the dotted path the namespace is installed under. Required.
	Module string

	// ConfigPath names the configuration file to dispatch. Empty means no
	// config-driven loading; the cache starts empty and can be filled with
	// Add calls.
	ConfigPath string

	// ManifestRoot is the directory the manifest is written under. Empty
	// disables manifest writing.
	ManifestRoot string

	// ConfigLoader parses ConfigPath. Defaults to the YAML loader.
	ConfigLoader config.Loader

	// Registry supplies the loader plugins. Defaults to a registry holding
	// the builtin plugin set.
	Registry *registry.Registry

	// Table is the module-resolution table to install into. Defaults to the
	// process-wide modtable.Default.
	Table *modtable.Table

	// Logger receives per-section warnings and errors. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Load runs the whole startup sequence: create the cache (installing its
// namespace under Options.Module and the <pkg>.db alias), parse the config
// file, dispatch every section to its loader, merge the results, and write
// the manifest. Config parse failures and manifest write failures are fatal;
// per-section loader failures are logged and skipped.
func Load(ctx context.Context, opts Options) (*cache.Cache, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	table := opts.Table
	if table == nil {
		table = modtable.Default
	}

	c, err := cache.New(table, opts.Module, cache.WithManifestRoot(opts.ManifestRoot))
	if err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		loader := opts.ConfigLoader
		if loader == nil {
			loader = yamlcfg.NewLoader()
		}
		doc, err := loader.Load(ctx, opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		reg := opts.Registry
		if reg == nil {
			reg = registry.New()
			for _, p := range builtinPlugins {
				p.Register(reg)
			}
		}

		result := dispatch.Load(ctx, reg, doc)
		if err := c.Add(result.All()...); err != nil {
			return nil, fmt.Errorf("merge loaded objects: %w", err)
		}
		logger.Info("Configuration dispatched.",
			"sections", len(doc.Sections), "objects", c.Namespace().Len())
	}

	if err := c.WriteManifest(); err != nil {
		return nil, err
	}
	return c, nil
}
