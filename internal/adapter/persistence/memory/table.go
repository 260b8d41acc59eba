// Package memory holds process-local repositories with the same contracts as the
// DynamoDB ones. Data is lost on restart.
package memory

import (
	"errors"
	"sync"
)

var ErrDuplicateID = errors.New("item already exists")

// table is a map keyed by id that remembers insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return ErrDuplicateID
	}
	t.rows[id] = v
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

// update applies fn to the stored row when it exists and fn accepts it.
// It returns the new row and false when nothing was written.
func (t *table[T]) update(id string, fn func(*T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok || !fn(&v) {
		var zero T
		return zero, false
	}
	t.rows[id] = v
	return v, true
}

func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, id := range t.order {
		if v := t.rows[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *table[T]) count(keep func(T) bool) int {
	return len(t.filter(keep))
}

func create[T any](t *table[T], id string, v T) (T, error) {
	if err := t.insert(id, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
