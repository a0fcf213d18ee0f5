package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/recordseal/internal/config"
	"github.com/allisson/recordseal/internal/metrics"
	studentDomain "github.com/allisson/recordseal/internal/student/domain"
	studentHTTP "github.com/allisson/recordseal/internal/student/http"
	"github.com/allisson/recordseal/internal/student/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestServer() *Server {
	return NewServer(nil, "127.0.0.1", 0, discardLogger())
}

// createRoutedServer builds a server with the full router and a mocked student use case.
func createRoutedServer(
	t *testing.T,
	cfg *config.Config,
	provider *metrics.Provider,
) (*Server, *mocks.MockStudentUseCase) {
	t.Helper()

	useCase := mocks.NewMockStudentUseCase(t)
	server := createTestServer()
	server.SetupRouter(t.Context(), cfg, studentHTTP.NewStudentHandler(useCase, discardLogger()), provider)

	return server, useCase
}

func defaultTestConfig() *config.Config {
	return &config.Config{
		MetricsNamespace: "test_app",
	}
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeJSON(t, w)["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("NotReady_NilDB", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		response := decodeJSON(t, w)
		assert.Equal(t, "not_ready", response["status"])
		components, ok := response["components"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", components["database"])
	})

	t.Run("Ready_DBAnswersPing", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "127.0.0.1", 0, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ready", decodeJSON(t, w)["status"])
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("NotReady_PingFails", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "127.0.0.1", 0, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})
	router.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	})

	for path, expected := range map[string]int{"/ok": http.StatusOK, "/fail": http.StatusInternalServerError} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, expected, w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_HealthAndReady(t *testing.T) {
	server, _ := createRoutedServer(t, defaultTestConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	server, _ := createRoutedServer(t, defaultTestConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	requestID := w.Header().Get("X-Request-Id")
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, parsed)
}

func TestRouter_StudentRoutes(t *testing.T) {
	server, useCase := createRoutedServer(t, defaultTestConfig(), nil)
	handler := server.GetHandler()

	now := time.Now().UTC()
	student := &studentDomain.Student{
		ID:        uuid.Must(uuid.NewV7()),
		Payload:   "$rv1$payload",
		CreatedAt: now,
		UpdatedAt: now,
	}

	useCase.On("Create", mock.Anything, "$rv1$payload").Return(student, nil).Once()
	useCase.On("Get", mock.Anything, student.ID).Return(student, nil).Once()
	useCase.On("List", mock.Anything, 0, 50).Return([]*studentDomain.Student{student}, nil).Once()
	useCase.On("Update", mock.Anything, student.ID, "$rv1$other").Return(student, nil).Once()
	useCase.On("Delete", mock.Anything, student.ID).Return(nil).Once()

	requests := []struct {
		method   string
		path     string
		body     string
		expected int
	}{
		{http.MethodPost, "/v1/students", `{"payload":"$rv1$payload"}`, http.StatusCreated},
		{http.MethodGet, "/v1/students/" + student.ID.String(), "", http.StatusOK},
		{http.MethodGet, "/v1/students", "", http.StatusOK},
		{http.MethodPut, "/v1/students/" + student.ID.String(), `{"payload":"$rv1$other"}`, http.StatusOK},
		{http.MethodDelete, "/v1/students/" + student.ID.String(), "", http.StatusNoContent},
	}

	for _, r := range requests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(w, req)
		assert.Equal(t, r.expected, w.Code, "%s %s", r.method, r.path)
	}
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := createRoutedServer(t, defaultTestConfig(), nil)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimitOnStudentAPI(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.1
	cfg.RateLimitBurst = 1

	server, useCase := createRoutedServer(t, cfg, nil)
	useCase.On("List", mock.Anything, 0, 50).Return([]*studentDomain.Student{}, nil).Once()

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/students", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/students", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Health checks are not rate limited.
	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterStore_EvictIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")

	store.evictIdle(time.Now().Add(time.Minute))

	count := 0
	store.limiters.Range(func(key, value any) bool {
		count++
		return true
	})
	assert.Zero(t, count)
}

func TestRateLimiterStore_ReusesLimiterPerIP(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}

	assert.Same(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.1"))
	assert.NotSame(t, store.getLimiter("10.0.0.1"), store.getLimiter("10.0.0.2"))
}

func TestServer_StartWithoutRouter(t *testing.T) {
	err := createTestServer().Start(context.Background())
	assert.EqualError(t, err, "router not configured")
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server, _ := createRoutedServer(t, defaultTestConfig(), nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("127.0.0.1", 0, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server, _ := createRoutedServer(t, defaultTestConfig(), provider)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
