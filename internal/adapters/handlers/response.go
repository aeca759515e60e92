package handlers

import (
	"net/http"
	"strconv"

	"github.com/iwtcode/velvetpour/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status":  "error",
		"message": errorMessage,
		"error": gin.H{
			"code":    statusCode,
			"message": message,
		},
	})
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, errors.InternalServerError, false)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusNotFound, errors.NotFound, true)
}

// Conflict возвращает ошибку 409, машина занята
func (h *Handler) Conflict(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusConflict, errors.Conflict, true)
}

// HandleError выбирает ответ по доменной ошибке
func (h *Handler) HandleError(c *gin.Context, err error) {
	switch errors.HTTPStatus(err) {
	case http.StatusNotFound:
		h.NotFound(c, err)
	case http.StatusConflict:
		h.Conflict(c, err)
	case http.StatusBadRequest:
		h.BadRequest(c, err, "")
	default:
		h.InternalError(c, err)
	}
}

// pathID разбирает числовой параметр пути
func (h *Handler) pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		h.BadRequest(c, err, "Invalid "+name)
		return 0, false
	}
	return id, true
}
