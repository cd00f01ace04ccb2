// Package remote abstracts where document artifacts live.
//
// A review session needs two things from its backing storage: the bytes
// of named artifacts (the analysis response, page images, the searchable
// rendition) and temporary URLs it can hand to a user for direct
// download (the per-page forms CSV). The [Store] interface captures
// both; [Dir] serves them from a local directory, and the gdrive
// subpackage serves them from Google Drive.
package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store fetches named artifacts and mints temporary download URLs.
type Store interface {
	// Fetch returns the contents of the named artifact.
	Fetch(ctx context.Context, name string) ([]byte, error)

	// SignedURL returns a URL from which the named artifact can be
	// downloaded directly for at least the given duration. Backends
	// without real expiry treat the duration as advisory.
	SignedURL(name string, expiry time.Duration) (string, error)
}

// Dir is a Store backed by a local directory, used by the CLI and in
// tests. Names use forward slashes regardless of platform.
type Dir struct {
	Root string
}

// NewDir creates a directory-backed store rooted at root.
func NewDir(root string) Dir {
	return Dir{Root: root}
}

// Fetch reads the named file from the directory.
func (d Dir) Fetch(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return data, nil
}

// SignedURL returns a file:// URL for the named file. Local files do not
// expire; the duration is ignored.
func (d Dir) SignedURL(name string, _ time.Duration) (string, error) {
	abs, err := filepath.Abs(d.path(name))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

func (d Dir) path(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(name))
}
