package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/coslynx/fitness-tracker/internal/interface/http"
)

// WorkoutModule wires the workout CRUD routes, mirroring GoalModule.

type WorkoutModule struct {
	Handler *handlers.WorkoutHandler
	Auth    gin.HandlerFunc
}

func NewWorkoutModule(h *handlers.WorkoutHandler, auth gin.HandlerFunc) *WorkoutModule {
	return &WorkoutModule{Handler: h, Auth: auth}
}

func (m *WorkoutModule) Register(rg *gin.RouterGroup) {
	w := rg.Group("/workouts")
	w.Use(m.Auth)
	{
		w.POST("", m.Handler.Create)
		w.GET("", m.Handler.List)
		w.GET("/search", m.Handler.Search)
		w.GET("/:id", m.Handler.Get)
		w.PUT("/:id", m.Handler.Update)
		w.DELETE("/:id", m.Handler.Delete)
	}
}
