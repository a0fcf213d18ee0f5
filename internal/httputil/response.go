// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/recordseal/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorMapping pairs a domain error with the status and body it is reported as.
type errorMapping struct {
	target   error
	status   int
	code     string
	message  string
	exposeIt bool
}

// Checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found", false},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data", false},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", "", true},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required", false},
	{
		apperrors.ErrForbidden,
		http.StatusForbidden,
		"forbidden",
		"You don't have permission to access this resource",
		false,
	},
	{
		apperrors.ErrUnavailable,
		http.StatusServiceUnavailable,
		"service_unavailable",
		"A required service is temporarily unavailable",
		false,
	},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON error body.
// Unknown errors become 500 without details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	errorResponse := ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.target) {
			continue
		}
		statusCode = m.status
		errorResponse = ErrorResponse{Error: m.code, Message: m.message}
		if m.exposeIt {
			errorResponse.Message = err.Error()
		}
		break
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
