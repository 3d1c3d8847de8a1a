package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
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

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestLRUCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUCache(2)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	defer c.Close()

	buf := []byte("one")
	if err := c.Set(ctx, "a", buf, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	buf[0] = 'X'

	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "one" {
		t.Fatalf("Get(a) = %q, %v, %v; want stored copy", data, hit, err)
	}

	_ = c.Set(ctx, "b", []byte("two"), 0)
	_, _, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", []byte("three"), 0) // evicts b, a was read more recently

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("recently read entry should survive eviction")
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewLRUCache(4)
	lc := c.(*LRUCache)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lc.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("entry should be live before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should miss after expiry")
	}
	if lc.Len() != 0 {
		t.Errorf("expired entry should be removed, Len = %d", lc.Len())
	}
}

func TestNewLRUCacheDisabled(t *testing.T) {
	for _, size := range []int{0, -1} {
		c, err := NewLRUCache(size)
		if err != nil {
			t.Fatalf("NewLRUCache(%d): %v", size, err)
		}
		if _, ok := c.(*NullCache); !ok {
			t.Errorf("NewLRUCache(%d) = %T, want *NullCache", size, c)
		}
	}
}

func TestKey(t *testing.T) {
	k1 := Key("gallery", "abc", "800")
	if k1 != Key("gallery", "abc", "800") {
		t.Error("Key should be deterministic")
	}
	if k1 == Key("gallery", "abc", "400") {
		t.Error("different parts should produce different keys")
	}
	if Key("x", "ab", "c") == Key("x", "a", "bc") {
		t.Error("part boundaries should affect the key")
	}
	if k1[:8] != "gallery:" {
		t.Errorf("Key should carry its prefix, got %s", k1)
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
	for i := 0; i < 50; i++ {
		if h := Hash([]byte(fmt.Sprint(i))); len(h) != 16 {
			t.Errorf("Hash length should be 16, got %d (%s)", len(h), h)
		}
	}
}
