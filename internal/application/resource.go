package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/coslynx/fitness-tracker/internal/domain/repository"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
)

// Indexer receives record changes for full-text search. Implementations are
// best-effort; a failed call never fails the originating request.
type Indexer interface {
	Store(ctx context.Context, id string, doc any) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error)
}

// Resource provides the create/read/update/delete lifecycle for one owned
// entity type. Goal and Workout are instances of this one service; the per-
// entity differences live entirely in the entity and its patch type.
type Resource[T repository.Record[P], P any] struct {
	name  string // display name used in error messages, e.g. "Goal"
	repo  repository.Owned[T]
	index Indexer
	log   *logrus.Logger
}

func NewResource[T repository.Record[P], P any](name string, repo repository.Owned[T], index Indexer, log *logrus.Logger) *Resource[T, P] {
	return &Resource[T, P]{name: name, repo: repo, index: index, log: log}
}

func (r *Resource[T, P]) op(action string) string {
	return strings.ToLower(r.name) + "." + action
}

func (r *Resource[T, P]) notFound(op, id string) *apperr.Error {
	return apperr.NotFound(op, fmt.Sprintf("%s with ID %s not found.", r.name, id))
}

// Create stamps identity and ownership onto rec, persists it, and returns
// the stored record. The owner always comes from the verified session, never
// from the request payload.
func (r *Resource[T, P]) Create(ctx context.Context, ownerID string, rec T) (T, error) {
	var zero T
	rec.Stamp(ownerID)
	if err := r.repo.Create(ctx, rec); err != nil {
		return zero, apperr.Persistence(r.op("create"), err)
	}
	r.reindex(ctx, rec)
	return rec, nil
}

// Get returns the owner's record. Records owned by other users are reported
// as not found.
func (r *Resource[T, P]) Get(ctx context.Context, ownerID, id string) (T, error) {
	var zero T
	op := r.op("find")
	rec, err := r.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return zero, r.notFound(op, id)
	}
	if err != nil {
		return zero, apperr.Persistence(op, err)
	}
	if rec.Owner() != ownerID {
		return zero, r.notFound(op, id)
	}
	return rec, nil
}

// List returns every record owned by ownerID in insertion order.
func (r *Resource[T, P]) List(ctx context.Context, ownerID string) ([]T, error) {
	recs, err := r.repo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Persistence(r.op("list"), err)
	}
	return recs, nil
}

// Update loads the record, merges the patch over it (absent fields keep
// their prior values), persists the result and returns it.
func (r *Resource[T, P]) Update(ctx context.Context, ownerID, id string, patch P) (T, error) {
	var zero T
	op := r.op("update")
	rec, err := r.Get(ctx, ownerID, id)
	if err != nil {
		return zero, err
	}
	rec.Merge(patch)
	if err := r.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, r.notFound(op, id)
		}
		return zero, apperr.Persistence(op, err)
	}
	r.reindex(ctx, rec)
	return rec, nil
}

// Delete removes the record. A missing id, or one owned by someone else, is
// treated as already deleted.
func (r *Resource[T, P]) Delete(ctx context.Context, ownerID, id string) error {
	rec, err := r.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Persistence(r.op("delete"), err)
	}
	if rec.Owner() != ownerID {
		return nil
	}
	if err := r.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperr.Persistence(r.op("delete"), err)
	}
	if r.index != nil {
		_ = r.index.Remove(ctx, id)
	}
	return nil
}

// Search runs an owner-scoped full-text query against the search index.
func (r *Resource[T, P]) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if r.index == nil {
		return []map[string]any{}, nil
	}
	hits, err := r.index.Search(ctx, ownerID, q, size)
	if err != nil {
		return nil, apperr.Persistence(r.op("search"), err)
	}
	return hits, nil
}

func (r *Resource[T, P]) reindex(ctx context.Context, rec T) {
	if r.index == nil {
		return
	}
	if err := r.index.Store(ctx, rec.RecordID(), rec); err != nil && r.log != nil {
		r.log.WithError(err).WithField("id", rec.RecordID()).Warn("search reindex failed")
	}
}
