package handlers

import (
	"net/http"

	"recipebox/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError writes {message} with the status of err's kind. Anything that
// is not an *apperrors.Error is logged and hidden behind a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Err != nil {
			h.logger.Debug("Request rejected", "path", c.FullPath(), "kind", appErr.Kind.String(), "error", appErr.Err)
		}
		c.JSON(appErr.Status(), gin.H{"message": appErr.Message})
		return
	}

	h.logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
