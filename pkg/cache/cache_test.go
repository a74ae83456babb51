package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	_, found, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("null cache should never report a hit")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	// Miss before set.
	_, found, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected miss for unset key")
	}

	// Round trip.
	if err := c.Set(ctx, "layout:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, found, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("expected hit after set")
	}
	if string(data) != "payload" {
		t.Errorf("got %q, want %q", data, "payload")
	}

	// Delete, then miss again.
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, found, _ = c.Get(ctx, "layout:abc")
	if found {
		t.Error("expected miss after delete")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "layout:missing"); err != nil {
		t.Errorf("Delete of missing key failed: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, found, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected expired entry to miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, found, err := c.Get(ctx, "bad")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected corrupt entry to miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected corrupt entry to be removed")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	h3 := Hash([]byte("world"))

	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("different inputs should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64-char hex string, got %d chars", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	layout := k.LayoutKey("hash1", LayoutKeyOpts{Width: 800, Height: 600})
	if layout == "" {
		t.Fatal("empty layout key")
	}
	if layout[:7] != "layout:" {
		t.Errorf("layout key missing prefix: %q", layout)
	}

	// Same inputs, same key.
	if again := k.LayoutKey("hash1", LayoutKeyOpts{Width: 800, Height: 600}); again != layout {
		t.Error("layout key should be deterministic")
	}

	// Differing options change the key.
	if other := k.LayoutKey("hash1", LayoutKeyOpts{Width: 400, Height: 600}); other == layout {
		t.Error("width should affect the layout key")
	}
	if other := k.LayoutKey("hash2", LayoutKeyOpts{Width: 800, Height: 600}); other == layout {
		t.Error("chart hash should affect the layout key")
	}

	artifact := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Hover: true})
	if artifact[:9] != "artifact:" {
		t.Errorf("artifact key missing prefix: %q", artifact)
	}
	if other := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Hover: false}); other == artifact {
		t.Error("hover flag should affect the artifact key")
	}
}
