// Package http provides HTTP handlers for the Level-2 student store. Payloads are Level-1
// envelopes that the store wraps again before persisting.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/recordseal/internal/httputil"
	"github.com/allisson/recordseal/internal/student/http/dto"
	studentUseCase "github.com/allisson/recordseal/internal/student/usecase"
	customValidation "github.com/allisson/recordseal/internal/validation"
)

// StudentHandler handles HTTP requests for student operations.
type StudentHandler struct {
	studentUseCase studentUseCase.StudentUseCase
	logger         *slog.Logger
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(useCase studentUseCase.StudentUseCase, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		studentUseCase: useCase,
		logger:         logger,
	}
}

// bindRequest parses and validates a StudentRequest, writing the error response on failure.
func (h *StudentHandler) bindRequest(c *gin.Context) (*dto.StudentRequest, bool) {
	var req dto.StudentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return nil, false
	}

	return &req, true
}

// CreateHandler stores a new student.
// POST /v1/students - Returns 201 Created with the id (payload is not echoed).
func (h *StudentHandler) CreateHandler(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	student, err := h.studentUseCase.Create(c.Request.Context(), req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapStudentToWriteResponse(student))
}

// GetHandler returns one student.
// GET /v1/students/:id - Returns 200 OK with the payload, or with error "decryption_failed"
// when the stored value could not be unwrapped.
func (h *StudentHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	student, err := h.studentUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStudentToReadResponse(student))
}

// ListHandler returns a page of students.
// GET /v1/students?offset=0&limit=50
func (h *StudentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	students, err := h.studentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStudentsToListResponse(students))
}

// UpdateHandler replaces the payload of an existing student.
// PUT /v1/students/:id - Returns 200 OK with the id.
func (h *StudentHandler) UpdateHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	student, err := h.studentUseCase.Update(c.Request.Context(), id, req.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStudentToWriteResponse(student))
}

// DeleteHandler soft deletes a student.
// DELETE /v1/students/:id - Returns 204 No Content.
func (h *StudentHandler) DeleteHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.studentUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
