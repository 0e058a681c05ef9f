package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/internal/infrastructure/memory"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
)

func newGoalService() (*Resource[*entity.Goal, entity.GoalPatch], *memory.Repository[*entity.Goal]) {
	repo := memory.NewRepository[*entity.Goal]()
	return NewResource[*entity.Goal, entity.GoalPatch]("Goal", repo, nil, nil), repo
}

func TestCreateAssignsIdentityAndOwner(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	g, err := svc.Create(ctx, "user-1", &entity.Goal{Title: "Lose 10 pounds", Target: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID == "" {
		t.Fatal("expected generated id")
	}
	if g.UserID != "user-1" {
		t.Fatalf("owner = %q, want user-1", g.UserID)
	}
	if g.Title != "Lose 10 pounds" || g.Target != 10 {
		t.Fatalf("fields not preserved: %+v", g)
	}
}

func TestGetScopedToOwner(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	g, _ := svc.Create(ctx, "user-1", &entity.Goal{Title: "Run", Target: 5})

	if _, err := svc.Get(ctx, "user-1", g.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}

	_, err := svc.Get(ctx, "user-2", g.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("foreign Get kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestListReturnsOnlyOwnersRecords(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, "user-1", &entity.Goal{Title: "a", Target: 1})
	_, _ = svc.Create(ctx, "user-2", &entity.Goal{Title: "b", Target: 2})
	_, _ = svc.Create(ctx, "user-1", &entity.Goal{Title: "c", Target: 3})

	got, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "a" || got[1].Title != "c" {
		t.Fatalf("insertion order not kept: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestUpdateMergesExactlyPresentFields(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	g, _ := svc.Create(ctx, "user-1", &entity.Goal{Title: "Run", Description: "weekly", Target: 5, Deadline: deadline})

	target := 10.0
	updated, err := svc.Update(ctx, "user-1", g.ID, entity.GoalPatch{Target: &target})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Target != 10 {
		t.Fatalf("target = %v, want 10", updated.Target)
	}
	if updated.Title != "Run" || updated.Description != "weekly" || !updated.Deadline.Equal(deadline) {
		t.Fatal("absent fields must keep prior values")
	}
}

func TestUpdateMissingRecordMessage(t *testing.T) {
	svc, _ := newGoalService()

	_, err := svc.Update(context.Background(), "user-1", "missing", entity.GoalPatch{})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
	want := "Goal with ID missing not found."
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestUpdateForeignRecordReportsNotFound(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	g, _ := svc.Create(ctx, "user-1", &entity.Goal{Title: "Run", Target: 5})

	title := "hijacked"
	_, err := svc.Update(ctx, "user-2", g.ID, entity.GoalPatch{Title: &title})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}

	stored, _ := svc.Get(ctx, "user-1", g.ID)
	if stored.Title != "Run" {
		t.Fatal("foreign update must not modify the record")
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	g, _ := svc.Create(ctx, "user-1", &entity.Goal{Title: "Run", Target: 5})
	if err := svc.Delete(ctx, "user-1", g.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := svc.Get(ctx, "user-1", g.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestDeleteMissingSucceeds(t *testing.T) {
	svc, _ := newGoalService()
	if err := svc.Delete(context.Background(), "user-1", "missing"); err != nil {
		t.Fatalf("delete of a missing record must succeed, got %v", err)
	}
}

func TestDeleteForeignRecordLeavesItInPlace(t *testing.T) {
	svc, _ := newGoalService()
	ctx := context.Background()

	g, _ := svc.Create(ctx, "user-1", &entity.Goal{Title: "Run", Target: 5})
	if err := svc.Delete(ctx, "user-2", g.ID); err != nil {
		t.Fatalf("foreign delete must report success, got %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", g.ID); err != nil {
		t.Fatal("record must survive a foreign delete")
	}
}

func TestPersistenceErrorsAreWrapped(t *testing.T) {
	repo := &failingRepo{}
	svc := NewResource[*entity.Goal, entity.GoalPatch]("Goal", repo, nil, nil)

	_, err := svc.Create(context.Background(), "user-1", &entity.Goal{Title: "Run", Target: 5})
	if apperr.KindOf(err) != apperr.KindPersistence {
		t.Fatalf("kind = %v, want persistence", apperr.KindOf(err))
	}
	want := "failed to create goal: connection refused"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

type failingRepo struct{}

var errDown = errors.New("connection refused")

func (f *failingRepo) Create(ctx context.Context, g *entity.Goal) error { return errDown }
func (f *failingRepo) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	return nil, errDown
}
func (f *failingRepo) FindAllByOwner(ctx context.Context, ownerID string) ([]*entity.Goal, error) {
	return nil, errDown
}
func (f *failingRepo) Update(ctx context.Context, g *entity.Goal) error { return errDown }
func (f *failingRepo) Delete(ctx context.Context, id string) error      { return errDown }
