package http

import (
	"time"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/domain/entity"
)

// CreateWorkoutRequest is the payload for POST /api/workouts.
type CreateWorkoutRequest struct {
	Type           string    `json:"type" binding:"required,min=1"`
	Duration       int       `json:"duration" binding:"required,gt=0"`
	Intensity      string    `json:"intensity" binding:"required,intensity"`
	CaloriesBurned int       `json:"caloriesBurned" binding:"gte=0"`
	Date           time.Time `json:"date" binding:"required"`
}

// WorkoutHandler serves /api/workouts.
type WorkoutHandler = ResourceHandler[*entity.Workout, CreateWorkoutRequest, entity.WorkoutPatch]

func NewWorkoutHandler(svc *application.Resource[*entity.Workout, entity.WorkoutPatch]) *WorkoutHandler {
	return &WorkoutHandler{
		Svc: svc,
		Make: func(req *CreateWorkoutRequest) *entity.Workout {
			return &entity.Workout{
				Type:           req.Type,
				Duration:       req.Duration,
				Intensity:      req.Intensity,
				CaloriesBurned: req.CaloriesBurned,
				Date:           req.Date,
			}
		},
	}
}
