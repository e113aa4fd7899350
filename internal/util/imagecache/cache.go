// Package imagecache keeps downloaded images on disk so repeated runs
// against the same URL skip the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// Cache stores fetched images under Dir, keyed by URL.
type Cache struct {
	// Dir is the cache directory. Empty means DefaultDir.
	Dir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory, usually ~/.cache/swatch/images.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "swatch", "images"), nil
	}
	return filepath.Join(cacheDir, "swatch", "images"), nil
}

// Key returns the cache file name for url: a truncated SHA-256 of the URL
// plus the URL's extension, or .img when it has none.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		ext = ".img"
	}

	return hex.EncodeToString(sum[:16]) + strings.ToLower(ext)
}

// Path returns where url is cached.
func (c *Cache) Path(url string) (string, error) {
	dir := c.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, Key(url)), nil
}

// Fetch returns the bytes of url from the cache, downloading and storing
// them on a miss.
func (c *Cache) Fetch(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error) {
	path, err := c.Path(url)
	if err != nil {
		return nil, err
	}

	if !c.Refresh {
		data, err := os.ReadFile(path) // #nosec G304 - path is derived from the cache directory and a hash
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read cached image: %w", err)
		}
	}

	data, err := httputil.Fetch(ctx, url, opts)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return nil, fmt.Errorf("failed to write cached image: %w", err)
	}

	return data, nil
}

// writeFile writes data to a temporary file beside path and renames it into
// place, so readers never see a partial cache entry.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { // #nosec G302 - cache files need standard read permissions
		return err
	}
	return os.Rename(tmp.Name(), path)
}
