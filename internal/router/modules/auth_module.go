package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/coslynx/fitness-tracker/internal/interface/http"
)

// AuthModule wires credential login, token refresh, logout and the OAuth
// provider flows.
// Public: POST /api/login, POST /api/refresh, GET /api/auth/:provider/login,
// GET /api/auth/:provider/callback
// Protected: POST /api/logout

type AuthModule struct {
	Handler *handlers.AuthHandler
	OAuth   *handlers.OAuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, o *handlers.OAuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, OAuth: o, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", m.Handler.Login)
	rg.POST("/refresh", m.Handler.Refresh)

	rg.GET("/auth/:provider/login", m.OAuth.Login)
	rg.GET("/auth/:provider/callback", m.OAuth.Callback)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	auth.POST("/logout", m.Handler.Logout)
}
