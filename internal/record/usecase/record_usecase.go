package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/recordseal/internal/layering"
	recordDomain "github.com/allisson/recordseal/internal/record/domain"
)

// DefaultBatchConcurrency bounds the goroutines used by OpenBatch when none is configured.
const DefaultBatchConcurrency = 4

// recordUseCase implements RecordUseCase.
type recordUseCase struct {
	level1           layering.Layer
	transport        Transport
	batchConcurrency int
	logger           *slog.Logger
}

// NewRecordUseCase creates a RecordUseCase. level1 is the client's Level-1 layer.
func NewRecordUseCase(
	level1 layering.Layer,
	transport Transport,
	batchConcurrency int,
	logger *slog.Logger,
) RecordUseCase {
	if batchConcurrency <= 0 {
		batchConcurrency = DefaultBatchConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &recordUseCase{
		level1:           level1,
		transport:        transport,
		batchConcurrency: batchConcurrency,
		logger:           logger,
	}
}

func (r *recordUseCase) Seal(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	plaintext, err := rec.MarshalCanonical()
	if err != nil {
		return "", err
	}

	envelope, err := r.level1.Wrap(ctx, plaintext)
	if err != nil {
		return "", err
	}
	return string(envelope), nil
}

func (r *recordUseCase) Open(ctx context.Context, envelope string) (recordDomain.StudentRecord, error) {
	plaintext, err := r.level1.Unwrap(ctx, []byte(envelope))
	if err != nil {
		return recordDomain.StudentRecord{}, err
	}
	return recordDomain.UnmarshalRecord(plaintext)
}

func (r *recordUseCase) OpenBatch(
	ctx context.Context,
	stored []recordDomain.StoredRecord,
) []recordDomain.OpenedRecord {
	results := make([]recordDomain.OpenedRecord, len(stored))

	var g errgroup.Group
	g.SetLimit(r.batchConcurrency)

	for i, s := range stored {
		g.Go(func() error {
			results[i] = r.openOne(ctx, s)
			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	return results
}

// openOne resolves a single stored record, falling back to a placeholder on any failure.
func (r *recordUseCase) openOne(ctx context.Context, s recordDomain.StoredRecord) recordDomain.OpenedRecord {
	if s.Unavailable {
		r.logger.Warn("record unavailable from level-2 service", slog.String("id", s.ID))
		return recordDomain.DecryptionFailedPlaceholder(s.ID)
	}
	if s.Payload == "" {
		r.logger.Warn("record has no payload", slog.String("id", s.ID))
		return recordDomain.NoDataPlaceholder(s.ID)
	}

	rec, err := r.Open(ctx, s.Payload)
	if err != nil {
		r.logger.Error("failed to open record", slog.String("id", s.ID), slog.Any("error", err))
		return recordDomain.DecryptionFailedPlaceholder(s.ID)
	}

	return recordDomain.OpenedRecord{ID: s.ID, Record: rec, Status: recordDomain.StatusOK}
}

func (r *recordUseCase) Add(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	envelope, err := r.Seal(ctx, rec)
	if err != nil {
		return "", err
	}
	return r.transport.Create(ctx, envelope)
}

func (r *recordUseCase) Get(ctx context.Context, id string) (recordDomain.OpenedRecord, error) {
	stored, err := r.transport.Get(ctx, id)
	if err != nil {
		return recordDomain.OpenedRecord{}, err
	}
	return r.openOne(ctx, stored), nil
}

func (r *recordUseCase) List(ctx context.Context, offset, limit int) ([]recordDomain.OpenedRecord, error) {
	stored, err := r.transport.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return r.OpenBatch(ctx, stored), nil
}

func (r *recordUseCase) Update(ctx context.Context, id string, rec recordDomain.StudentRecord) error {
	envelope, err := r.Seal(ctx, rec)
	if err != nil {
		return err
	}
	return r.transport.Update(ctx, id, envelope)
}

func (r *recordUseCase) Delete(ctx context.Context, id string) error {
	return r.transport.Delete(ctx, id)
}
