// Package memory provides in-process implementations of the repository
// contracts. Data lives for the lifetime of the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/controlescolar/escolar/internal/app/repositories"
)

// spec describes how a Table keys, orders and constrains its rows
type spec[K comparable, E any] struct {
	// key returns the identifier of a row
	key func(*E) K
	// assign sets a surrogate identifier on create; nil for natural keys
	assign func(*E, int64)
	// less orders List results
	less func(a, b *E) bool
	// unique extracts values that must not repeat across rows, one per constraint.
	// A false second result means the row has no value for that constraint.
	unique []func(*E) (string, bool)
	// preserve copies server-owned fields of the stored row onto an update
	preserve func(stored E, e *E)
	// afterWrite runs under the write lock once e has been stored
	afterWrite func(rows map[K]E, e *E)
}

// Table is a concurrency-safe Store backed by a map
type Table[K comparable, E any] struct {
	mu   sync.RWMutex
	rows map[K]E
	seq  int64
	spec spec[K, E]

	// guards report whether other rows still reference an id; checked on delete
	guards []func(K) bool
}

var _ repositories.Store[int64, struct{}] = (*Table[int64, struct{}])(nil)

func newTable[K comparable, E any](s spec[K, E]) *Table[K, E] {
	return &Table[K, E]{rows: make(map[K]E), spec: s}
}

// guard registers a reference check consulted before deletes
func (t *Table[K, E]) guard(fn func(K) bool) {
	t.guards = append(t.guards, fn)
}

// any reports whether some row satisfies pred
func (t *Table[K, E]) any(pred func(*E) bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if pred(&r) {
			return true
		}
	}
	return false
}

// exists reports whether id is stored
func (t *Table[K, E]) exists(id K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rows[id]
	return ok
}

// List returns every row in table order
func (t *Table[K, E]) List(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	out := make([]E, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	t.mu.RUnlock()

	if t.spec.less != nil {
		sort.Slice(out, func(i, j int) bool { return t.spec.less(&out[i], &out[j]) })
	}
	return out, nil
}

// Get returns a copy of the row stored under id
func (t *Table[K, E]) Get(ctx context.Context, id K) (*E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

// Create stores e, assigning a surrogate identifier when the table has one
func (t *Table[K, E]) Create(ctx context.Context, e *E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.spec.assign == nil {
		if _, ok := t.rows[t.spec.key(e)]; ok {
			return repositories.ErrAlreadyExists
		}
	}
	if t.violatesUnique(e, nil) {
		return repositories.ErrAlreadyExists
	}

	if t.spec.assign != nil {
		t.seq++
		t.spec.assign(e, t.seq)
	}
	t.store(e)
	return nil
}

// Update replaces the row with the identifier of e
func (t *Table[K, E]) Update(ctx context.Context, e *E) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.spec.key(e)
	stored, ok := t.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if t.violatesUnique(e, &id) {
		return repositories.ErrAlreadyExists
	}
	if t.spec.preserve != nil {
		t.spec.preserve(stored, e)
	}
	t.store(e)
	return nil
}

// Delete removes the row stored under id unless another row references it
func (t *Table[K, E]) Delete(ctx context.Context, id K) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, referenced := range t.guards {
		if referenced(id) {
			return repositories.ErrReferenced
		}
	}
	delete(t.rows, id)
	return nil
}

func (t *Table[K, E]) store(e *E) {
	t.rows[t.spec.key(e)] = *e
	if t.spec.afterWrite != nil {
		t.spec.afterWrite(t.rows, e)
	}
}

// violatesUnique reports whether e repeats a unique value of another row.
// self, when set, names the row being updated.
func (t *Table[K, E]) violatesUnique(e *E, self *K) bool {
	for _, extract := range t.spec.unique {
		want, ok := extract(e)
		if !ok {
			continue
		}
		for k, r := range t.rows {
			if self != nil && k == *self {
				continue
			}
			if got, ok := extract(&r); ok && got == want {
				return true
			}
		}
	}
	return false
}
