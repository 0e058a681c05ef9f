package http

import (
	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
	"github.com/coslynx/fitness-tracker/pkg/response"
	"github.com/coslynx/fitness-tracker/pkg/validation"
)

// RegisterRequest is the payload for POST /api/users.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"required,min=1"`
}

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

// Register creates an account. This is the only unauthenticated user route.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}

// Me returns the authenticated account.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), userIDFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}

// Update modifies the caller's own account. Other accounts are off limits.
func (h *UserHandler) Update(c *gin.Context) {
	if c.Param("id") != userIDFrom(c) {
		response.FromError(c, apperr.Unauthorized("user.update", "cannot modify another user"))
		return
	}
	var patch entity.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}

// Delete removes the caller's own account.
func (h *UserHandler) Delete(c *gin.Context) {
	if c.Param("id") != userIDFrom(c) {
		response.FromError(c, apperr.Unauthorized("user.delete", "cannot delete another user"))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// UploadAvatar accepts a multipart "avatar" file and stores it for the caller.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.ValidationError(c, map[string]string{"avatar": "file is required"})
		return
	}
	if fh.Size > maxAvatarBytes {
		response.ValidationError(c, map[string]string{"avatar": "file exceeds 5MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), userIDFrom(c), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"avatarUrl": url})
}
