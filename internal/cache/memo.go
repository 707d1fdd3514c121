// Package cache provides a small in-memory LRU used to memoize
// translation results within a session.
package cache

import (
	"container/list"
	"sync"
)

// Memo is a fixed-capacity LRU map from input text to a computed result.
// Translation of fixed text is idempotent, so entries never need
// invalidation; the capacity bound only keeps a pathological session from
// growing without limit.
type Memo struct {
	capacity int

	items    map[string]*list.Element
	eviction *list.List

	mu sync.Mutex

	stats Stats
}

// Stats holds memoization counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Items     int
}

type memoEntry struct {
	key   string
	value string
}

// NewMemo creates a memo cache holding at most capacity entries.
func NewMemo(capacity int) *Memo {
	if capacity < 1 {
		capacity = 1
	}
	return &Memo{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get returns the memoized value for key, marking it most recently used.
func (m *Memo) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		m.stats.Misses++
		return "", false
	}

	m.eviction.MoveToFront(elem)
	m.stats.Hits++
	return elem.Value.(*memoEntry).value, true
}

// Put stores a value for key, evicting the least recently used entry when
// the cache is full.
func (m *Memo) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.eviction.MoveToFront(elem)
		elem.Value.(*memoEntry).value = value
		return
	}

	for m.eviction.Len() >= m.capacity {
		oldest := m.eviction.Back()
		if oldest == nil {
			break
		}
		m.eviction.Remove(oldest)
		delete(m.items, oldest.Value.(*memoEntry).key)
		m.stats.Evictions++
	}

	m.items[key] = m.eviction.PushFront(&memoEntry{key: key, value: value})
}

// Len returns the number of memoized entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Stats returns a snapshot of the memoization counters.
func (m *Memo) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Items = len(m.items)
	return s
}
