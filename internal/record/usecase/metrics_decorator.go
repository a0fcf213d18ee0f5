package usecase

import (
	"context"
	"time"

	"github.com/allisson/recordseal/internal/metrics"
	recordDomain "github.com/allisson/recordseal/internal/record/domain"
)

const metricsDomain = "records"

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *recordUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, r.metrics, metricsDomain, operation, start, err)
}

func (r *recordUseCaseWithMetrics) Seal(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	start := time.Now()
	envelope, err := r.next.Seal(ctx, rec)
	r.record(ctx, "record_seal", start, err)
	return envelope, err
}

func (r *recordUseCaseWithMetrics) Open(
	ctx context.Context,
	envelope string,
) (recordDomain.StudentRecord, error) {
	start := time.Now()
	rec, err := r.next.Open(ctx, envelope)
	r.record(ctx, "record_open", start, err)
	return rec, err
}

// OpenBatch records one duration for the batch and one operation per record, labeled with
// the record status.
func (r *recordUseCaseWithMetrics) OpenBatch(
	ctx context.Context,
	stored []recordDomain.StoredRecord,
) []recordDomain.OpenedRecord {
	start := time.Now()
	opened := r.next.OpenBatch(ctx, stored)

	for _, o := range opened {
		r.metrics.RecordOperation(ctx, metricsDomain, "record_open_batch_item", string(o.Status))
	}
	r.metrics.RecordDuration(ctx, metricsDomain, "record_open_batch", time.Since(start), metrics.StatusSuccess)

	return opened
}

func (r *recordUseCaseWithMetrics) Add(ctx context.Context, rec recordDomain.StudentRecord) (string, error) {
	start := time.Now()
	id, err := r.next.Add(ctx, rec)
	r.record(ctx, "record_add", start, err)
	return id, err
}

func (r *recordUseCaseWithMetrics) Get(ctx context.Context, id string) (recordDomain.OpenedRecord, error) {
	start := time.Now()
	opened, err := r.next.Get(ctx, id)
	r.record(ctx, "record_get", start, err)
	return opened, err
}

func (r *recordUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]recordDomain.OpenedRecord, error) {
	start := time.Now()
	opened, err := r.next.List(ctx, offset, limit)
	r.record(ctx, "record_list", start, err)
	return opened, err
}

func (r *recordUseCaseWithMetrics) Update(
	ctx context.Context,
	id string,
	rec recordDomain.StudentRecord,
) error {
	start := time.Now()
	err := r.next.Update(ctx, id, rec)
	r.record(ctx, "record_update", start, err)
	return err
}

func (r *recordUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.Delete(ctx, id)
	r.record(ctx, "record_delete", start, err)
	return err
}
