package app

import (
	"fmt"

	"github.com/allisson/recordseal/internal/record/transport"
	recordUsecase "github.com/allisson/recordseal/internal/record/usecase"
)

// RecordTransport returns the HTTP transport to the student store at API_BASE_URL.
func (c *Container) RecordTransport() recordUsecase.Transport {
	c.recordTransportInit.Do(func() {
		c.recordTransport = transport.NewHTTPTransport(c.config.APIBaseURL, c.config.APITimeout)
	})
	return c.recordTransport
}

// RecordUseCase returns the client record use case.
func (c *Container) RecordUseCase() (recordUsecase.RecordUseCase, error) {
	c.recordUseCaseInit.Do(func() {
		var err error
		c.recordUseCase, err = c.initRecordUseCase()
		c.setInitError("recordUseCase", err)
	})
	if err := c.initError("recordUseCase"); err != nil {
		return nil, err
	}
	return c.recordUseCase, nil
}

// initRecordUseCase creates the record use case, wrapped with metrics when enabled.
func (c *Container) initRecordUseCase() (recordUsecase.RecordUseCase, error) {
	level1, err := c.Level1Layer()
	if err != nil {
		return nil, fmt.Errorf("failed to get level-1 layer for record use case: %w", err)
	}

	baseUseCase := recordUsecase.NewRecordUseCase(
		level1,
		c.RecordTransport(),
		c.config.BatchConcurrency,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for record use case: %w", err)
		}
		return recordUsecase.NewRecordUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
