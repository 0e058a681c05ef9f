package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
	"github.com/coslynx/fitness-tracker/pkg/response"
	"github.com/coslynx/fitness-tracker/pkg/validation"
)

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves credential login, token refresh and logout. Tokens
// travel only in HttpOnly cookies.
type AuthHandler struct {
	Svc     *application.UserService
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.UserService, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, u)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.FromError(c, apperr.Unauthorized("user.refresh", "missing refresh token"))
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, gin.H{"refreshed": true})
}

// Logout drops the session and clears cookies. It succeeds even when no
// session is active.
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := userIDFrom(c); uid != "" {
		h.Svc.Logout(c.Request.Context(), uid)
	}
	h.Cookies.Clear(c)
	response.JSON(c, http.StatusOK, gin.H{"loggedOut": true})
}
