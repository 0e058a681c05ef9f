package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
	"github.com/coslynx/fitness-tracker/pkg/response"
)

const oauthStateTTL = 10 * time.Minute

// OAuthHandler serves the provider login redirect and callback. State is
// round-tripped through a short-lived cookie and must match on callback.
type OAuthHandler struct {
	Svc     *application.OAuthService
	Cookies *helpers.CookieManager

	// RedirectURL is where the browser lands after a successful login,
	// typically the frontend dashboard.
	RedirectURL string
}

func NewOAuthHandler(svc *application.OAuthService, cookies *helpers.CookieManager, redirectURL string) *OAuthHandler {
	return &OAuthHandler{Svc: svc, Cookies: cookies, RedirectURL: redirectURL}
}

func (h *OAuthHandler) Login(c *gin.Context) {
	url, state, err := h.Svc.AuthURL(c.Param("provider"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetState(c, state, oauthStateTTL)
	c.Redirect(http.StatusFound, url)
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	const op = "oauth.callback"

	state := c.Query("state")
	saved, err := c.Cookie("oauth_state")
	h.Cookies.ClearState(c)
	if err != nil || state == "" || state != saved {
		response.FromError(c, apperr.Unauthorized(op, "oauth state mismatch"))
		return
	}

	code := c.Query("code")
	if code == "" {
		response.FromError(c, apperr.Unauthorized(op, "missing authorization code"))
		return
	}

	u, err := h.Svc.HandleCallback(c.Request.Context(), c.Param("provider"), code)
	if err != nil {
		response.FromError(c, err)
		return
	}
	pair, err := h.Svc.Users.IssueTokens(c.Request.Context(), u)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	if h.RedirectURL != "" {
		c.Redirect(http.StatusFound, h.RedirectURL)
		return
	}
	response.OK(c, u)
}
