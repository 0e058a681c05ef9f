package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/coslynx/fitness-tracker/internal/interface/http"
)

// UserModule wires account routes.
// Public: POST /api/users (registration)
// Protected: GET /api/users, GET/PUT/DELETE /api/users/:id,
// GET /api/profile, POST /api/profile/avatar

type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.GET("/users", m.Handler.List)
		auth.GET("/users/:id", m.Handler.Get)
		auth.PUT("/users/:id", m.Handler.Update)
		auth.DELETE("/users/:id", m.Handler.Delete)

		auth.GET("/profile", m.Handler.Me)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
