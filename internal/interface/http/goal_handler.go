package http

import (
	"time"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/domain/entity"
)

// CreateGoalRequest is the payload for POST /api/goals.
type CreateGoalRequest struct {
	Title       string    `json:"title" binding:"required,min=1"`
	Description string    `json:"description"`
	Target      float64   `json:"target" binding:"required,gt=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// GoalHandler serves /api/goals.
type GoalHandler = ResourceHandler[*entity.Goal, CreateGoalRequest, entity.GoalPatch]

func NewGoalHandler(svc *application.Resource[*entity.Goal, entity.GoalPatch]) *GoalHandler {
	return &GoalHandler{
		Svc: svc,
		Make: func(req *CreateGoalRequest) *entity.Goal {
			return &entity.Goal{
				Title:       req.Title,
				Description: req.Description,
				Target:      req.Target,
				Deadline:    req.Deadline,
			}
		},
	}
}
