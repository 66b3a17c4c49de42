//go:build unit

package cache

import (
	"testing"
	"time"

	"edusite/internal/config"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(config.CacheConfig{FilePath: "file::memory:", DefaultTTL: 60})
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)

	key := Key("program", "list", "en", "page=1")
	if err := c.Set(key, []byte(`{"items":[]}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"items":[]}` {
		t.Errorf("expected cached value, got %q", got)
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(Key("program", "absent"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %q", got)
	}
}

func TestCache_ExpiredEntryIsAMiss(t *testing.T) {
	c := newTestCache(t)

	key := Key("blog", "list", "zh")
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired entry to miss, got %q", got)
	}
}

func TestCache_InvalidateType(t *testing.T) {
	c := newTestCache(t)

	programKey := Key("program", "list", "en")
	blogKey := Key("blog", "list", "en")
	if err := c.Set(programKey, []byte("p"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(blogKey, []byte("b"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if err := c.InvalidateType("program"); err != nil {
		t.Fatalf("InvalidateType failed: %v", err)
	}

	got, err := c.Get(programKey)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected program entries gone after invalidation, got %q", got)
	}

	got, err = c.Get(blogKey)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "b" {
		t.Error("expected blog entries to survive program invalidation")
	}
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t)

	if err := c.Set(Key("faq", "list"), []byte("f"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := c.Get(Key("faq", "list"))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected empty cache after Clear, got %q", got)
	}
}

func TestCache_Stats(t *testing.T) {
	c := newTestCache(t)

	key := Key("video", "list")
	if err := c.Set(key, []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(key); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(Key("video", "missing")); err != nil {
		t.Fatal(err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.Entries)
	}
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("program", "list", "en", "page=1", "limit=10")
	b := Key("program", "list", "en", "page=1", "limit=10")
	if a != b {
		t.Errorf("expected identical keys, got %q and %q", a, b)
	}
	if a == Key("program", "list", "zh", "page=1", "limit=10") {
		t.Error("expected language to change the key")
	}
}
