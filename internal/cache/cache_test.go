package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/lexis/internal/model"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("clause", "ab", "c")
	b := CacheKey("clause", "a", "bc")
	if a == b {
		t.Error("expected length-prefixed parts to produce different keys")
	}
	if !strings.HasPrefix(a, "lexis:v1:clause:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
	if CacheKey("clause", "ab", "c") != a {
		t.Error("expected stable keys")
	}
	if CacheKey("zeroshot", "ab", "c") == a {
		t.Error("expected kind to be part of the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}

	_ = c.Set("k", []byte("v"), 0)
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Errorf("expected hit with v, got %q (%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey("clause", "Fees are due monthly.")

	if err := c.Set(key, []byte(`{"predicted_label":"payment"}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok || string(got) != `{"predicted_label":"payment"}` {
		t.Errorf("expected stored value, got %q (%v)", got, ok)
	}

	// Survives a new instance over the same directory
	if _, ok := NewDiskCache(dir, time.Hour).Get(key); !ok {
		t.Error("expected persisted entry")
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Delete of missing key should succeed: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := CacheKey("tokens", "x")

	_ = c.Set(key, []byte("v"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expected expired entry to miss")
	}
	if _, err := os.Stat(c.path(key)); !os.IsNotExist(err) {
		t.Error("expected expired file to be removed")
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := CacheKey("tokens", "x")

	path := c.path(key)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	_ = os.WriteFile(path, []byte("not json"), 0644)

	if _, ok := c.Get(key); ok {
		t.Error("expected corrupt entry to miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("zeroshot", "The Buyer shall pay.")

	_ = NewDiskCache(dir, time.Hour).Set(key, []byte("v"), 0)

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if got, ok := c.Get(key); !ok || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q (%v)", got, ok)
	}
	if _, ok := c.tiers[0].Get(key); !ok {
		t.Error("expected value promoted to memory")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("expected miss after clear")
	}
}

func TestTieredCache_BackfillsFasterTiers(t *testing.T) {
	fast := NewMemoryCache(time.Minute, time.Minute)
	middle := NewMemoryCache(time.Minute, time.Minute)
	slow := NewMemoryCache(time.Minute, time.Minute)
	c := NewTiered(fast, middle, slow)

	_ = slow.Set("k", []byte("v"), 0)
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("expected slow-tier hit, got %q (%v)", got, ok)
	}
	if _, ok := fast.Get("k"); !ok {
		t.Error("expected fast tier backfilled")
	}
	if _, ok := middle.Get("k"); !ok {
		t.Error("expected middle tier backfilled")
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := slow.Get("k"); ok {
		t.Error("expected key deleted from every tier")
	}
}

func TestNew(t *testing.T) {
	if c := New(model.CacheConfig{Enabled: false}); c != nil {
		t.Error("expected nil cache when disabled")
	}
	if _, ok := New(model.CacheConfig{Enabled: true}).(*MemoryCache); !ok {
		t.Error("expected memory cache without a directory")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("expected layered cache with a directory")
	}
}
