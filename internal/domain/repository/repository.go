package repository

import (
	"context"
	"errors"
)

// ErrNotFound is the sentinel returned when a looked-up record does not
// exist. Stores never treat "not found" as a transport failure.
var ErrNotFound = errors.New("record not found")

// Record is implemented by pointer types of owned entities (Goal, Workout).
// P is the entity's patch type.
type Record[P any] interface {
	RecordID() string
	Owner() string
	Stamp(ownerID string)
	Merge(P)
}

// Owned is the storage contract shared by every owner-scoped entity.
// All operations are single round-trips against the store.
type Owned[T any] interface {
	Create(ctx context.Context, rec T) error
	FindByID(ctx context.Context, id string) (T, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]T, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}
