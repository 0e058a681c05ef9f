package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/internal/application"
	"github.com/coslynx/fitness-tracker/internal/domain/repository"
	"github.com/coslynx/fitness-tracker/pkg/response"
	"github.com/coslynx/fitness-tracker/pkg/validation"
)

// userIDFrom returns the account id placed in the context by the auth
// middleware. Routes using it must sit behind that middleware.
func userIDFrom(c *gin.Context) string {
	return c.GetString("userID")
}

// ResourceHandler serves the CRUD endpoints for one owned entity type.
// C is the create request payload; Make turns a bound C into a fresh record.
// The Goal and Workout handlers are instances of this one type.
type ResourceHandler[T repository.Record[P], C any, P any] struct {
	Svc  *application.Resource[T, P]
	Make func(*C) T
}

func (h *ResourceHandler[T, C, P]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), userIDFrom(c), h.Make(&req))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, rec)
}

func (h *ResourceHandler[T, C, P]) Get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), userIDFrom(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, rec)
}

func (h *ResourceHandler[T, C, P]) List(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context(), userIDFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, recs)
}

func (h *ResourceHandler[T, C, P]) Update(c *gin.Context) {
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), userIDFrom(c), c.Param("id"), patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, rec)
}

func (h *ResourceHandler[T, C, P]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), userIDFrom(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ResourceHandler[T, C, P]) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), userIDFrom(c), c.Query("q"), size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, hits)
}
