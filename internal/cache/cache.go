// Package cache prunes expired entries from the on-disk preview caches.
package cache

import (
	"path/filepath"
	"time"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/where"
	"github.com/spf13/afero"
)

// TTL bounds how long cached posters and detail panels stay valid.
// Metadata drifts slowly, so a week keeps previews fresh without refetching on every run.
const TTL = 7 * 24 * time.Hour

// CollectGarbage prunes expired poster and detail-panel cache files in the
// background. Only the poster directory is swept: the cache root holds
// gache-managed stores (queries, version) with their own expiry.
// Errors are ignored, a failed sweep just delays cleanup.
func CollectGarbage() {
	sweep(where.Posters())
}

func sweep(dir string) {
	entries, err := afero.ReadDir(filesystem.API(), dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if time.Since(entry.ModTime()) > TTL {
			_ = filesystem.API().Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
