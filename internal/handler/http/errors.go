package http

import (
	"errors"
	"net/http"

	"chatgenius/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HandleServiceError 把服务层错误映射为 HTTP 状态码
func HandleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, service.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrConflict):
		ErrorResponse(c, http.StatusConflict, "Already exists")
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
