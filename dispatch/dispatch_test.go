package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/beamns/config"
	"github.com/vk/beamns/internal/ctxlog"
	"github.com/vk/beamns/namespace"
	"github.com/vk/beamns/registry"
)

// logCtx returns a context carrying a logger that writes to the returned buffer.
func logCtx(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

func constLoader(entries ...namespace.Entry) registry.Loader {
	return registry.LoaderFunc(func(ctx context.Context, info any) ([]namespace.Entry, error) {
		return entries, nil
	})
}

func TestLoad_HeaderIsolation(t *testing.T) {
	t.Parallel()

	ctx, buf := logCtx(t)
	reg := registry.New()
	reg.Register("first", constLoader(namespace.Entry{Name: "a", Value: 1}))
	reg.Register("second", registry.LoaderFunc(func(ctx context.Context, info any) ([]namespace.Entry, error) {
		return nil, errors.New("device controller unreachable")
	}))
	reg.Register("third", constLoader(namespace.Entry{Name: "c", Value: 3}))
	doc := &config.Document{Sections: []config.Section{
		{Header: "first"},
		{Header: "second"},
		{Header: "third"},
	}}

	res := Load(ctx, reg, doc)

	// A failure in the middle never blocks the sections around it.
	require.Equal(t, []string{"first", "second", "third"}, res.Headers())
	require.Len(t, res.Objects("first"), 1)
	require.Empty(t, res.Objects("second"))
	require.Len(t, res.Objects("third"), 1)
	require.Contains(t, buf.String(), "second")
	require.Contains(t, buf.String(), "device controller unreachable")
}

func TestLoad_UnresolvableHeader(t *testing.T) {
	t.Parallel()

	ctx, buf := logCtx(t)
	reg := registry.New()
	doc := &config.Document{Sections: []config.Section{{Header: "ghost"}}}

	res := Load(ctx, reg, doc)

	require.Equal(t, []string{"ghost"}, res.Headers())
	require.Empty(t, res.Objects("ghost"))
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "ghost")
}

func TestLoad_PanickingLoaderIsContained(t *testing.T) {
	t.Parallel()

	ctx, buf := logCtx(t)
	reg := registry.New()
	reg.Register("bad", registry.LoaderFunc(func(ctx context.Context, info any) ([]namespace.Entry, error) {
		panic("boom")
	}))
	reg.Register("good", constLoader(namespace.Entry{Name: "ok", Value: true}))
	doc := &config.Document{Sections: []config.Section{
		{Header: "bad"},
		{Header: "good"},
	}}

	res := Load(ctx, reg, doc)

	require.Empty(t, res.Objects("bad"))
	require.Len(t, res.Objects("good"), 1)
	require.Contains(t, buf.String(), "boom")
}

func TestLoad_InfoReachesLoader(t *testing.T) {
	t.Parallel()

	ctx, _ := logCtx(t)
	reg := registry.New()
	var seen any
	reg.Register("devices", registry.LoaderFunc(func(ctx context.Context, info any) ([]namespace.Entry, error) {
		seen = info
		return nil, nil
	}))
	info := map[string]any{"prefix": "XPP"}
	doc := &config.Document{Sections: []config.Section{{Header: "devices", Info: info}}}

	Load(ctx, reg, doc)

	require.Equal(t, info, seen)
}

func TestResult_AllFlattensInDocumentOrder(t *testing.T) {
	t.Parallel()

	ctx, _ := logCtx(t)
	reg := registry.New()
	reg.Register("one", constLoader(namespace.Entry{Name: "a", Value: 1}, namespace.Entry{Name: "b", Value: 2}))
	reg.Register("two", constLoader(namespace.Entry{Name: "c", Value: 3}))
	doc := &config.Document{Sections: []config.Section{
		{Header: "one"},
		{Header: "two"},
	}}

	res := Load(ctx, reg, doc)

	require.Equal(t, []namespace.Entry{
		{Name: "a", Value: 1},
		{Name: "b", Value: 2},
		{Name: "c", Value: 3},
	}, res.All())
}
