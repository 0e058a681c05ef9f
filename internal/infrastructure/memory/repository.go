package memory

import (
	"context"
	"sync"

	"github.com/coslynx/fitness-tracker/internal/domain/repository"
)

type record interface {
	RecordID() string
	Owner() string
}

// Repository is an in-memory, insertion-ordered store for owned records.
// It backs unit tests and local development without Postgres.
type Repository[T record] struct {
	mu    sync.Mutex
	items map[string]T
	order []string

	// Accesses counts store round-trips; tests use it to assert that
	// unauthenticated requests never touch the store.
	Accesses int
}

func NewRepository[T record]() *Repository[T] {
	return &Repository[T]{items: make(map[string]T)}
}

func (r *Repository[T]) Create(ctx context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accesses++
	id := rec.RecordID()
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = rec
	return nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accesses++
	rec, ok := r.items[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return rec, nil
}

func (r *Repository[T]) FindAllByOwner(ctx context.Context, ownerID string) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accesses++
	out := make([]T, 0)
	for _, id := range r.order {
		if rec, ok := r.items[id]; ok && rec.Owner() == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *Repository[T]) Update(ctx context.Context, rec T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accesses++
	id := rec.RecordID()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	r.items[id] = rec
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accesses++
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
