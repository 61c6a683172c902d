package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/neoportfolio/internal/services"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyPassword),
		errors.Is(err, services.ErrInvalidDraft),
		errors.Is(err, services.ErrEmptyQuestion),
		errors.Is(err, services.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, services.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAIDisabled),
		errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// writeError maps service errors to a status and a JSON error body.
// Anything unrecognised is a failed write to the backing store.
func (s *Server) writeError(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "error", err, "request_id", c.GetString(requestIDKey))
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
