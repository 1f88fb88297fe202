// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lsoftware/inventory/internal/errors"
)

// ErrorResponse is the error body written by every failing endpoint.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// Response is the success envelope of the API endpoints.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// MessageAccessDenied is the public message of authorization failures.
const MessageAccessDenied = "Access is denied"

// now is replaced in tests.
var now = time.Now

// newErrorResponse builds an ErrorResponse for the current request.
func newErrorResponse(c *gin.Context, statusCode int, message string) ErrorResponse {
	path := ""
	if c.Request != nil && c.Request.URL != nil {
		path = c.Request.URL.Path
	}
	return ErrorResponse{
		Status:    statusCode,
		Error:     http.StatusText(statusCode),
		Message:   message,
		Path:      path,
		Timestamp: now().UTC().Format(time.RFC3339),
	}
}

// AbortWithErrorGin writes an ErrorResponse with an explicit public message and aborts the chain.
// err is logged and never shown to the client.
func AbortWithErrorGin(c *gin.Context, statusCode int, message string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("request rejected",
			slog.Int("status_code", statusCode),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.AbortWithStatusJSON(statusCode, newErrorResponse(c, statusCode, message))
}

// HandleErrorGin maps domain errors to HTTP status codes and writes an ErrorResponse.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var message string

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found"

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with existing data"

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Authentication is required"

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		message = MessageAccessDenied

	default:
		// Internal details stay in the logs.
		statusCode = http.StatusInternalServerError
		message = "An internal error occurred"
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode == http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, newErrorResponse(c, statusCode, message))
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, newErrorResponse(c, http.StatusBadRequest, err.Error()))
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, newErrorResponse(c, http.StatusUnprocessableEntity, err.Error()))
}

// SuccessGin writes the success envelope.
func SuccessGin(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Response{
		Status:  statusCode,
		Message: message,
		Data:    data,
	})
}
