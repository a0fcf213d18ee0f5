package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/recordseal/internal/errors"
	"github.com/allisson/recordseal/internal/httputil"
	studentDomain "github.com/allisson/recordseal/internal/student/domain"
	"github.com/allisson/recordseal/internal/student/http/dto"
	"github.com/allisson/recordseal/internal/student/usecase/mocks"
)

const testPayload = "$rv1$aes-gcm$argon2id$t=1,m=1024,p=1$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*StudentHandler, *mocks.MockStudentUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockStudentUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewStudentHandler(mockUseCase, logger), mockUseCase
}

// createTestContext creates a gin context with a JSON request body.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func newTestStudent(payload string) *studentDomain.Student {
	now := time.Now().UTC()
	return &studentDomain.Student{
		ID:         uuid.Must(uuid.NewV7()),
		Ciphertext: []byte("wrapped"),
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStudentHandler_CreateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		student := newTestStudent(testPayload)

		mockUseCase.On("Create", mock.Anything, testPayload).Return(student, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/students", dto.StudentRequest{Payload: testPayload})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeResponse[dto.StudentResponse](t, w)
		assert.Equal(t, student.ID.String(), response.ID)
		assert.Empty(t, response.Payload)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/v1/students", strings.NewReader("{not json"))
		c.Request.Header.Set("Content-Type", "application/json")

		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_EmptyPayload", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/students", dto.StudentRequest{})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeResponse[httputil.ErrorResponse](t, w)
		assert.Equal(t, "validation_error", response.Error)
		assert.Contains(t, response.Message, "payload")
	})

	t.Run("Error_PayloadWithNewline", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(
			http.MethodPost,
			"/v1/students",
			dto.StudentRequest{Payload: testPayload + "\n"},
		)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_KeeperUnavailable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, testPayload).
			Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "level2 seal")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/students", dto.StudentRequest{Payload: testPayload})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Error_UnexpectedFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, testPayload).Return(nil, errors.New("db down")).Once()

		c, w := createTestContext(http.MethodPost, "/v1/students", dto.StudentRequest{Payload: testPayload})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		response := decodeResponse[httputil.ErrorResponse](t, w)
		assert.NotContains(t, response.Message, "db down")
	})
}

func TestStudentHandler_GetHandler(t *testing.T) {
	t.Run("Success_ReturnsPayload", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		student := newTestStudent(testPayload)

		mockUseCase.On("Get", mock.Anything, student.ID).Return(student, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/students/"+student.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: student.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse[dto.StudentResponse](t, w)
		assert.Equal(t, testPayload, response.Payload)
		assert.Empty(t, response.Error)
	})

	t.Run("Success_UnavailableReportsDecryptionFailed", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		student := newTestStudent("")
		student.Unavailable = true

		mockUseCase.On("Get", mock.Anything, student.ID).Return(student, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/students/"+student.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: student.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse[dto.StudentResponse](t, w)
		assert.Equal(t, dto.UnwrapFailedError, response.Error)
		assert.Empty(t, response.Payload)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/students/42", nil)
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, id).Return(nil, studentDomain.ErrStudentNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/students/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		response := decodeResponse[httputil.ErrorResponse](t, w)
		assert.Equal(t, "not_found", response.Error)
	})
}

func TestStudentHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		unavailable := newTestStudent("")
		unavailable.Unavailable = true
		students := []*studentDomain.Student{newTestStudent(testPayload), unavailable}

		mockUseCase.On("List", mock.Anything, 0, httputil.DefaultLimit).Return(students, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/students", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse[dto.ListStudentsResponse](t, w)
		require.Len(t, response.Data, 2)
		assert.Equal(t, testPayload, response.Data[0].Payload)
		assert.Equal(t, dto.UnwrapFailedError, response.Data[1].Error)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 20, 10).Return([]*studentDomain.Student{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/students?offset=20&limit=10", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/students?limit=1000", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 0, httputil.DefaultLimit).
			Return(nil, errors.New("db down")).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/students", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStudentHandler_UpdateHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		student := newTestStudent(testPayload)

		mockUseCase.On("Update", mock.Anything, student.ID, testPayload).Return(student, nil).Once()

		c, w := createTestContext(
			http.MethodPut,
			"/v1/students/"+student.ID.String(),
			dto.StudentRequest{Payload: testPayload},
		)
		c.Params = gin.Params{{Key: "id", Value: student.ID.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse[dto.StudentResponse](t, w)
		assert.Equal(t, student.ID.String(), response.ID)
		assert.Empty(t, response.Payload)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/students/abc", dto.StudentRequest{Payload: testPayload})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidPayload", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		c, w := createTestContext(http.MethodPut, "/v1/students/"+id.String(), dto.StudentRequest{})
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Update", mock.Anything, id, testPayload).
			Return(nil, studentDomain.ErrStudentNotFound).
			Once()

		c, w := createTestContext(
			http.MethodPut,
			"/v1/students/"+id.String(),
			dto.StudentRequest{Payload: testPayload},
		)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStudentHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_NoContent", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/students/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, c.Writer.Status())
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, id).Return(studentDomain.ErrStudentNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/students/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodDelete, "/v1/students/x", nil)
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
