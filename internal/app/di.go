// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/allisson/recordseal/internal/config"
	"github.com/allisson/recordseal/internal/database"
	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
	"github.com/allisson/recordseal/internal/http"
	"github.com/allisson/recordseal/internal/layering"
	"github.com/allisson/recordseal/internal/metrics"
	recordUsecase "github.com/allisson/recordseal/internal/record/usecase"
	studentHTTP "github.com/allisson/recordseal/internal/student/http"
	studentUsecase "github.com/allisson/recordseal/internal/student/usecase"
)

// dbConnectTimeout bounds the initial database ping.
const dbConnectTimeout = 10 * time.Second

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access. The store side (database, Level 2, HTTP servers)
// and the client side (Level 1, transport) share the container but never require each other.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Envelope
	kmsService        envelopeService.KMSService
	aeadManager       envelopeService.AEADManager
	kdfService        envelopeService.KeyDeriver
	envelopeCodec     envelopeService.Codec
	level1KeyProvider envelopeService.KeyProvider
	level1Layer       layering.Layer

	// Student store (Level 2)
	level2Keeper   envelopeService.KMSKeeper
	level2Pipeline *layering.Pipeline
	studentRepo    studentUsecase.StudentRepository
	studentUseCase studentUsecase.StudentUseCase
	studentHandler *studentHTTP.StudentHandler

	// Record client (Level 1)
	recordTransport recordUsecase.Transport
	recordUseCase   recordUsecase.RecordUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	kmsServiceInit        sync.Once
	aeadManagerInit       sync.Once
	kdfServiceInit        sync.Once
	envelopeCodecInit     sync.Once
	level1KeyProviderInit sync.Once
	level1LayerInit       sync.Once
	level2KeeperInit      sync.Once
	level2PipelineInit    sync.Once
	studentRepoInit       sync.Once
	studentUseCaseInit    sync.Once
	studentHandlerInit    sync.Once
	recordTransportInit   sync.Once
	recordUseCaseInit     sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// setInitError records the result of a component initialization.
func (c *Container) setInitError(name string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// initError returns the stored initialization error for a component, if any.
func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		c.db, err = c.initDB()
		c.setInitError("db", err)
	})
	if err := c.initError("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		var err error
		c.txManager, err = c.initTxManager()
		c.setInitError("txManager", err)
	})
	if err := c.initError("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider. It returns nil when metrics
// are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		var err error
		c.metricsProvider, err = c.initMetricsProvider()
		c.setInitError("metricsProvider", err)
	})
	if err := c.initError("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are
// disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		var err error
		c.businessMetrics, err = c.initBusinessMetrics()
		c.setInitError("businessMetrics", err)
	})
	if err := c.initError("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the student store API server with its routes registered. ctx bounds
// background work started by the router middleware.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		c.httpServer, err = c.initHTTPServer(ctx)
		c.setInitError("httpServer", err)
	})
	if err := c.initError("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server. It returns nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		var err error
		c.metricsServer, err = c.initMetricsServer()
		c.setInitError("metricsServer", err)
	})
	if err := c.initError("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.level2Keeper != nil {
		if err := c.level2Keeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("level-2 keeper close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the Prometheus-backed meter provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder, falling back to a no-op.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}

// initHTTPServer creates the API server and registers the student routes.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	studentHandler, err := c.StudentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get student handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, studentHandler, metricsProvider)
	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
