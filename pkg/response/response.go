package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coslynx/fitness-tracker/pkg/apperr"
)

// The API uses flat bodies: the record (or array) on success and
// {"error": "..."} on failure. The request id travels in a header so bodies
// stay clean for clients.

const RequestIDHeader = "X-Request-ID"

func setRequestID(c *gin.Context) {
	if id := c.GetString("request_id"); id != "" {
		c.Header(RequestIDHeader, id)
	}
}

func JSON(c *gin.Context, status int, v any) {
	setRequestID(c)
	c.JSON(status, v)
}

func Created(c *gin.Context, v any) { JSON(c, http.StatusCreated, v) }

func OK(c *gin.Context, v any) { JSON(c, http.StatusOK, v) }

func NoContent(c *gin.Context) {
	setRequestID(c)
	c.Status(http.StatusNoContent)
}

// Error renders {"error": message} with the given status.
func Error(c *gin.Context, status int, message string) {
	setRequestID(c)
	c.JSON(status, gin.H{"error": message})
}

// ValidationError renders a 400 with per-field details.
func ValidationError(c *gin.Context, details map[string]string) {
	setRequestID(c)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": details})
}

// FromError maps an application error to its HTTP representation.
func FromError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && apperr.KindOf(err) == apperr.KindUnknown {
		msg = "Internal server error"
	}
	Error(c, status, msg)
}

// AbortUnauthorized aborts the request chain with a 401.
func AbortUnauthorized(c *gin.Context, message string) {
	setRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
