package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/coslynx/fitness-tracker/internal/interface/http"
)

// GoalModule wires the goal CRUD routes. Everything requires an
// authenticated session; records are scoped to the caller.

type GoalModule struct {
	Handler *handlers.GoalHandler
	Auth    gin.HandlerFunc
}

func NewGoalModule(h *handlers.GoalHandler, auth gin.HandlerFunc) *GoalModule {
	return &GoalModule{Handler: h, Auth: auth}
}

func (m *GoalModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/goals")
	g.Use(m.Auth)
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
