package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache implements a file-based cache for CLI usage.
// Each entry is one JSON file pairing the payload with its expiration.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory is created if it doesn't exist. An empty dir defaults
// to ~/.cache/plotline/.
func NewFileCache(dir string) (Cache, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// DefaultDir returns the default cache directory, ~/.cache/plotline/.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "plotline"), nil
}

// Dir returns the directory entries are stored in.
func (c *FileCache) Dir() string { return c.dir }

// fileEntry wraps cached data with its expiration.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value. Corrupt or expired entries are removed and
// reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value. A zero ttl never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), payload, 0o644)
}

// Delete removes a value. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for the file backend.
func (c *FileCache) Close() error { return nil }

// path maps a key to a file name. Keys contain a ':' prefix separator
// which is replaced to stay filesystem-safe.
func (c *FileCache) path(key string) string {
	name := strings.ReplaceAll(key, ":", "_") + ".json"
	return filepath.Join(c.dir, name)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
