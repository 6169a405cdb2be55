package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gtdflow/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// handleError maps service errors onto the structured error body:
// validation -> 400, not found -> 404, conflict -> 409, everything else 500.
// Internal errors are logged with operation context; the client only sees a
// generic message.
func handleError(c *gin.Context, op string, started time.Time, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "NOT_FOUND",
			"message": "resource not found",
		})
	case errors.Is(err, services.ErrWaitingReasonRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrPatternRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VALIDATION",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrTimerAlreadyRunning),
		errors.Is(err, services.ErrNoOpenTimer),
		errors.Is(err, services.ErrSystemTag):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
	default:
		log.Printf("operation=%s duration=%s actor=%s error=%v",
			op, time.Since(started), c.GetString("user_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "INTERNAL_SERVER_ERROR",
			"message": "failed to process request",
		})
	}
}

// currentUserID parses the user id placed in the context by the session
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	id, err := uuid.FromString(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "UNAUTHORIZED",
			"message": "invalid user id in session",
		})
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VALIDATION",
			"message": "invalid id",
		})
		return uuid.Nil, false
	}
	return id, true
}
