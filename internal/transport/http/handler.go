package handlers

import (
	"errors"
	"net/http"

	"github.com/MarianaQC/courseplatform-api/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError мапит доменные ошибки в статусы. Всё, что не опознали, — 500
// без деталей наружу.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateOrder),
		errors.Is(err, domain.ErrCannotPublish),
		errors.Is(err, domain.ErrCannotMoveUp),
		errors.Is(err, domain.ErrCannotMoveDown),
		errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
