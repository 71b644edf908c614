package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const manifestHeader = `The objects referenced in this file are populated during %[1]s
startup. If you wish to use them from another session, resolve
them from the %[1]s.db namespace after startup has completed.

`

const manifestBody = "last loaded on %s\nwith the following objects:\n\n"

// timeNow is swapped out in tests to pin the manifest timestamp.
var timeNow = time.Now

// WriteManifest renders the namespace contents to a text file under the
// configured manifest root: one line per entry, the name left-padded to 20
// columns followed by the object's runtime type. The file is overwritten on
// every call. Without a manifest root this is a no-op.
//
// Write failures are returned as-is: an undeliverable manifest means the
// deployment is misconfigured, and retrying or swallowing the error would
// only hide that from the operator. Parent directories are not created.
func (c *Cache) WriteManifest() error {
	if c.manifestRoot == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, manifestHeader, topPackage(c.module))
	fmt.Fprintf(&b, manifestBody, timeNow().Format(time.DateTime))
	for name, obj := range c.ns.Entries() {
		fmt.Fprintf(&b, "%-20s %T\n", name, obj)
	}

	path := c.ManifestPath()
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ManifestPath returns where WriteManifest will write: the module path with
// its last dotted segment renamed to `<segment>.txt`, resolved under the
// manifest root. Empty when no root is configured.
func (c *Cache) ManifestPath() string {
	if c.manifestRoot == "" {
		return ""
	}
	parts := strings.Split(c.module, ".")
	parts[len(parts)-1] += ".txt"
	return filepath.Join(c.manifestRoot, filepath.Join(parts...))
}

func topPackage(module string) string {
	pkg, _, _ := strings.Cut(module, ".")
	return pkg
}
