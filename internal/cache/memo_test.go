package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoBasicOperations(t *testing.T) {
	m := NewMemo(10)

	if _, ok := m.Get("missing"); ok {
		t.Error("Get returned a value for a missing key")
	}

	m.Put("hello", "world")
	got, ok := m.Get("hello")
	if !ok {
		t.Fatal("Get failed: key not found after Put")
	}
	if got != "world" {
		t.Errorf("Value mismatch: got %q, want %q", got, "world")
	}

	// Overwrite keeps a single entry.
	m.Put("hello", "again")
	got, _ = m.Get("hello")
	if got != "again" {
		t.Errorf("Overwritten value mismatch: got %q", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len after overwrite: got %d, want 1", m.Len())
	}
}

func TestMemoLRUEviction(t *testing.T) {
	m := NewMemo(3)

	m.Put("a", "1")
	m.Put("b", "2")
	m.Put("c", "3")

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := m.Get("a"); !ok {
		t.Fatal("expected hit for a")
	}

	m.Put("d", "4")

	if _, ok := m.Get("b"); ok {
		t.Error("Expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := m.Get(key); !ok {
			t.Errorf("Expected %s to survive eviction", key)
		}
	}

	if s := m.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions: got %d, want 1", s.Evictions)
	}
}

func TestMemoStats(t *testing.T) {
	m := NewMemo(5)
	m.Put("k", "v")

	m.Get("k")
	m.Get("k")
	m.Get("nope")

	s := m.Stats()
	if s.Hits != 2 {
		t.Errorf("Hits: got %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses: got %d, want 1", s.Misses)
	}
	if s.Items != 1 {
		t.Errorf("Items: got %d, want 1", s.Items)
	}
}

func TestMemoConcurrentAccess(t *testing.T) {
	m := NewMemo(100)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d", j%20)
				m.Put(key, fmt.Sprintf("val-%d-%d", worker, j))
				m.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() > 20 {
		t.Errorf("Unexpected entry count: %d", m.Len())
	}
}

func TestMemoMinimumCapacity(t *testing.T) {
	m := NewMemo(0)
	m.Put("a", "1")
	m.Put("b", "2")

	if m.Len() != 1 {
		t.Errorf("Capacity floor violated: %d entries", m.Len())
	}
	if _, ok := m.Get("b"); !ok {
		t.Error("Most recent entry missing")
	}
}
