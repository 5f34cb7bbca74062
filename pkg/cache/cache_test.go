package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	t.Run("dataset", func(t *testing.T) {
		a := k.DatasetKey("data/nyt.json")
		if !strings.HasPrefix(a, "dataset:") {
			t.Errorf("DatasetKey = %q, want dataset: prefix", a)
		}
		if a != k.DatasetKey("data/nyt.json") {
			t.Error("DatasetKey should be deterministic")
		}
		if a == k.DatasetKey("data/other.json") {
			t.Error("different sources should produce different keys")
		}
	})

	t.Run("layout", func(t *testing.T) {
		base := LayoutKeyOpts{Width: 1600, Height: 680, Tiling: "squarify"}
		a := k.LayoutKey("abc", base)
		if !strings.HasPrefix(a, "layout:") {
			t.Errorf("LayoutKey = %q, want layout: prefix", a)
		}

		focused := base
		focused.Focus = "World"
		if a == k.LayoutKey("abc", focused) {
			t.Error("focus should change the layout key")
		}
		titled := base
		titled.Title = "World News"
		if a == k.LayoutKey("abc", titled) {
			t.Error("title should change the layout key")
		}
		if a == k.LayoutKey("abd", base) {
			t.Error("dataset hash should change the layout key")
		}
	})

	t.Run("artifact", func(t *testing.T) {
		svg := ArtifactKeyOpts{Format: "svg", Style: "tol", Unit: "articles"}
		png := svg
		png.Format = "png"
		if k.ArtifactKey("h", svg) == k.ArtifactKey("h", png) {
			t.Error("format should change the artifact key")
		}
		if !strings.HasPrefix(k.ArtifactKey("h", svg), "artifact:") {
			t.Error("ArtifactKey should carry artifact: prefix")
		}
	})
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "prod:")

	if got, want := k.DatasetKey("x"), "prod:"+inner.DatasetKey("x"); got != want {
		t.Errorf("DatasetKey = %q, want %q", got, want)
	}
	opts := LayoutKeyOpts{Width: 10, Height: 10}
	if got, want := k.LayoutKey("h", opts), "prod:"+inner.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey = %q, want %q", got, want)
	}
	aopts := ArtifactKeyOpts{Format: "json"}
	if got, want := k.ArtifactKey("h", aopts), "prod:"+inner.ArtifactKey("h", aopts); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").DatasetKey("x"); got != "p:"+inner.DatasetKey("x") {
		t.Errorf("nil inner keyer should fall back to default, got %q", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want payload", data)
	}

	entries, size, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if entries != 1 || size == 0 {
		t.Errorf("Stats = (%d, %d), want one non-empty entry", entries, size)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "short", []byte("a"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("b"), 0); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry returned as hit")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl expired")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry file was not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); err != nil || hit {
		t.Errorf("Get(corrupt) = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("Stats after Clear = %d entries", n)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Clear removed the cache directory: %v", err)
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Lookup(ctx, c, "nope"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Lookup(miss) error = %v, want ErrCacheMiss", err)
	}

	_ = c.Set(ctx, "yes", []byte("v"), 0)
	data, err := Lookup(ctx, c, "yes")
	if err != nil || string(data) != "v" {
		t.Errorf("Lookup(hit) = %q, %v", data, err)
	}
}
