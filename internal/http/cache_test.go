package http

import (
	"testing"
	"time"
)

func TestLRUCacheBasics(t *testing.T) {
	c := newLRUCache[int](2, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Fatalf("unexpected hit")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	if v, found := c.Get("a"); !found || v != 1 {
		t.Fatalf("a=%d found=%v", v, found)
	}

	// "a" was just touched, so inserting "c" evicts "b".
	c.Set("c", 3)
	if _, found := c.Get("b"); found {
		t.Fatalf("b should have been evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Fatalf("a should survive eviction")
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := newLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get("a"); found {
		t.Fatalf("expired entry served")
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := newLRUCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if _, found := c.Get("a"); found {
		t.Fatalf("purge left entries")
	}
	c.Set("a", 3)
	if v, found := c.Get("a"); !found || v != 3 {
		t.Fatalf("cache unusable after purge")
	}
}
