package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/internal/domain/repository"
)

type GoalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.Goal) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (id, title, description, target, deadline, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, g.ID, g.Title, g.Description, g.Target, g.Deadline, g.UserID)

	return row.Scan(&g.CreatedAt, &g.UpdatedAt)
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*entity.Goal, error) {
	g := &entity.Goal{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, target, deadline, user_id, created_at, updated_at
		FROM goals
		WHERE id = $1
	`, id)
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Target, &g.Deadline,
		&g.UserID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GoalRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*entity.Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, target, deadline, user_id, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*entity.Goal, 0)
	for rows.Next() {
		g := &entity.Goal{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Target, &g.Deadline,
			&g.UserID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, g *entity.Goal) error {
	g.UpdatedAt = time.Now()

	// Owner is never part of the SET list; it is fixed at creation.
	res, err := r.pool.Exec(ctx, `
		UPDATE goals
		SET title = $1, description = $2, target = $3, deadline = $4, updated_at = $5
		WHERE id = $6
	`, g.Title, g.Description, g.Target, g.Deadline, g.UpdatedAt, g.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.Owned[*entity.Goal] = (*GoalRepository)(nil)
