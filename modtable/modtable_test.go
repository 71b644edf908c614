package modtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/beamns/namespace"
)

func TestInstallAndResolve(t *testing.T) {
	t.Parallel()

	table := New()
	ns, err := namespace.New(namespace.Entry{Name: "a", Value: 1})
	require.NoError(t, err)

	table.Install("xpp.beamline", ns)

	got, err := table.Resolve("xpp.beamline")
	require.NoError(t, err)
	require.Same(t, ns, got)
}

func TestResolve_NotInstalled(t *testing.T) {
	t.Parallel()

	table := New()

	_, err := table.Resolve("nowhere")
	require.ErrorIs(t, err, ErrNotInstalled)
	require.Contains(t, err.Error(), "nowhere")
}

func TestInstall_OverwriteShadows(t *testing.T) {
	t.Parallel()

	table := New()
	old, err := namespace.New(namespace.Entry{Name: "old", Value: 1})
	require.NoError(t, err)
	replacement, err := namespace.New(namespace.Entry{Name: "next", Value: 2})
	require.NoError(t, err)

	table.Install("xpp", old)
	table.Install("xpp", replacement)

	// The previous binding is permanently shadowed, silently.
	got, err := table.Resolve("xpp")
	require.NoError(t, err)
	require.Same(t, replacement, got)
}

func TestPaths_Sorted(t *testing.T) {
	t.Parallel()

	table := New()
	ns, err := namespace.New()
	require.NoError(t, err)
	table.Install("zzz", ns)
	table.Install("aaa", ns)

	require.Equal(t, []string{"aaa", "zzz"}, table.Paths())
}
