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

type WorkoutRepository struct {
	pool *pgxpool.Pool
}

func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *entity.Workout) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workouts (id, type, duration, intensity, calories_burned, date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, w.ID, w.Type, w.Duration, w.Intensity, w.CaloriesBurned, w.Date, w.UserID)

	return row.Scan(&w.CreatedAt, &w.UpdatedAt)
}

func (r *WorkoutRepository) FindByID(ctx context.Context, id string) (*entity.Workout, error) {
	w := &entity.Workout{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, type, duration, intensity, calories_burned, date, user_id, created_at, updated_at
		FROM workouts
		WHERE id = $1
	`, id)
	if err := row.Scan(&w.ID, &w.Type, &w.Duration, &w.Intensity, &w.CaloriesBurned,
		&w.Date, &w.UserID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *WorkoutRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*entity.Workout, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, duration, intensity, calories_burned, date, user_id, created_at, updated_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]*entity.Workout, 0)
	for rows.Next() {
		w := &entity.Workout{}
		if err := rows.Scan(&w.ID, &w.Type, &w.Duration, &w.Intensity, &w.CaloriesBurned,
			&w.Date, &w.UserID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *WorkoutRepository) Update(ctx context.Context, w *entity.Workout) error {
	w.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE workouts
		SET type = $1, duration = $2, intensity = $3, calories_burned = $4, date = $5, updated_at = $6
		WHERE id = $7
	`, w.Type, w.Duration, w.Intensity, w.CaloriesBurned, w.Date, w.UpdatedAt, w.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.Owned[*entity.Workout] = (*WorkoutRepository)(nil)
