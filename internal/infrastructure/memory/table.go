// Package memory holds map-backed repositories used for local runs
// (STORE_DRIVER=memory) and as fakes in service tests.
package memory

import (
	"cmp"
	"slices"
	"sync"

	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
)

type row[T any] struct {
	v   T
	seq int64
}

// table stores value copies so callers never alias stored rows.
// Methods with a Locked suffix expect the caller to hold mu.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]*row[T]
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*row[T])}
}

func (t *table[T]) getLocked(id string) (*T, bool) {
	r, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	c := r.v
	return &c, true
}

func (t *table[T]) putLocked(id string, v *T) {
	if r, ok := t.rows[id]; ok {
		r.v = *v
		return
	}
	t.seq++
	t.rows[id] = &row[T]{v: *v, seq: t.seq}
}

// selectLocked returns copies of matching rows, newest insert first.
func (t *table[T]) selectLocked(match func(*T) bool) []*T {
	matched := make([]*row[T], 0)
	for _, r := range t.rows {
		if match == nil || match(&r.v) {
			matched = append(matched, r)
		}
	}
	slices.SortFunc(matched, func(a, b *row[T]) int { return cmp.Compare(b.seq, a.seq) })
	out := make([]*T, 0, len(matched))
	for _, r := range matched {
		c := r.v
		out = append(out, &c)
	}
	return out
}

func (t *table[T]) get(id string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.getLocked(id)
}

func (t *table[T]) exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) find(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectLocked(match)
}

func (t *table[T]) first(match func(*T) bool) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(&r.v) {
			c := r.v
			return &c, true
		}
	}
	return nil, false
}

// remove deletes id; absent ids are ignored.
func (t *table[T]) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, id)
}

func (t *table[T]) removeWhere(match func(*T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, r := range t.rows {
		if match(&r.v) {
			delete(t.rows, id)
		}
	}
}

func paginate[T any](items []*T, p repository.Page) []*T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []*T{}
	}
	end := min(start+p.Limit, len(items))
	return items[start:end]
}
