package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/allisson/recordseal/internal/database"
	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
	"github.com/allisson/recordseal/internal/layering"
	studentHTTP "github.com/allisson/recordseal/internal/student/http"
	studentRepository "github.com/allisson/recordseal/internal/student/repository"
	studentUsecase "github.com/allisson/recordseal/internal/student/usecase"
)

// level2LayerName identifies the KMS layer in logs and errors.
const level2LayerName = "level2-kms"

// ErrLevel2KeyNotConfigured is returned when the store starts without KMS_KEY_URI.
var ErrLevel2KeyNotConfigured = errors.New("KMS_KEY_URI is required for the student store")

// Level2Keeper returns the KMS keeper used by the store's Level-2 layer.
func (c *Container) Level2Keeper() (envelopeService.KMSKeeper, error) {
	c.level2KeeperInit.Do(func() {
		var err error
		c.level2Keeper, err = c.initLevel2Keeper()
		c.setInitError("level2Keeper", err)
	})
	if err := c.initError("level2Keeper"); err != nil {
		return nil, err
	}
	return c.level2Keeper, nil
}

// Level2Pipeline returns the Level-2 layers applied to every stored envelope.
func (c *Container) Level2Pipeline() (*layering.Pipeline, error) {
	c.level2PipelineInit.Do(func() {
		var err error
		c.level2Pipeline, err = c.initLevel2Pipeline()
		c.setInitError("level2Pipeline", err)
	})
	if err := c.initError("level2Pipeline"); err != nil {
		return nil, err
	}
	return c.level2Pipeline, nil
}

// StudentRepository returns the student repository based on database driver.
func (c *Container) StudentRepository() (studentUsecase.StudentRepository, error) {
	c.studentRepoInit.Do(func() {
		var err error
		c.studentRepo, err = c.initStudentRepository()
		c.setInitError("studentRepository", err)
	})
	if err := c.initError("studentRepository"); err != nil {
		return nil, err
	}
	return c.studentRepo, nil
}

// StudentUseCase returns the student use case.
func (c *Container) StudentUseCase() (studentUsecase.StudentUseCase, error) {
	c.studentUseCaseInit.Do(func() {
		var err error
		c.studentUseCase, err = c.initStudentUseCase()
		c.setInitError("studentUseCase", err)
	})
	if err := c.initError("studentUseCase"); err != nil {
		return nil, err
	}
	return c.studentUseCase, nil
}

// StudentHandler returns the student HTTP handler.
func (c *Container) StudentHandler() (*studentHTTP.StudentHandler, error) {
	c.studentHandlerInit.Do(func() {
		var err error
		c.studentHandler, err = c.initStudentHandler()
		c.setInitError("studentHandler", err)
	})
	if err := c.initError("studentHandler"); err != nil {
		return nil, err
	}
	return c.studentHandler, nil
}

// initLevel2Keeper opens the keeper at KMS_KEY_URI.
func (c *Container) initLevel2Keeper() (envelopeService.KMSKeeper, error) {
	if c.config.KMSKeyURI == "" {
		return nil, ErrLevel2KeyNotConfigured
	}
	keeper, err := c.KMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open level-2 keeper: %w", err)
	}
	c.Logger().Info("level-2 keeper opened",
		slog.String("layer", level2LayerName),
		slog.String("kms_provider", c.config.KMSProvider),
	)
	return keeper, nil
}

// initLevel2Pipeline builds the pipeline from the KMS layer.
func (c *Container) initLevel2Pipeline() (*layering.Pipeline, error) {
	keeper, err := c.Level2Keeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get keeper for level-2 pipeline: %w", err)
	}
	return layering.NewPipeline(layering.NewKeeperLayer(level2LayerName, keeper))
}

// initStudentRepository creates the student repository based on the database driver.
func (c *Container) initStudentRepository() (studentUsecase.StudentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for student repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return studentRepository.NewPostgreSQLStudentRepository(db), nil
	case database.DriverMySQL:
		return studentRepository.NewMySQLStudentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStudentUseCase creates the student use case, wrapped with metrics when enabled.
func (c *Container) initStudentUseCase() (studentUsecase.StudentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for student use case: %w", err)
	}

	studentRepo, err := c.StudentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get student repository for student use case: %w", err)
	}

	pipeline, err := c.Level2Pipeline()
	if err != nil {
		return nil, fmt.Errorf("failed to get level-2 pipeline for student use case: %w", err)
	}

	baseUseCase := studentUsecase.NewStudentUseCase(txManager, studentRepo, pipeline, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for student use case: %w", err)
		}
		return studentUsecase.NewStudentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initStudentHandler creates the student HTTP handler with all its dependencies.
func (c *Container) initStudentHandler() (*studentHTTP.StudentHandler, error) {
	studentUseCase, err := c.StudentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get student use case for student handler: %w", err)
	}
	return studentHTTP.NewStudentHandler(studentUseCase, c.Logger()), nil
}
