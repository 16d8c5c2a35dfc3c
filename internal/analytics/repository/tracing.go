package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/population/internal/analytics/domain"
)

var tracer = otel.Tracer("analytics-repository")

// TracingReportRepository wraps a ReportRepository with spans.
type TracingReportRepository struct {
	next domain.ReportRepository
}

func NewTracingReportRepository(next domain.ReportRepository) *TracingReportRepository {
	return &TracingReportRepository{next: next}
}

func (r *TracingReportRepository) Create(ctx context.Context, report *domain.Report) error {
	ctx, span := tracer.Start(ctx, "repository.Report.Create",
		trace.WithAttributes(attribute.String("report.type", string(report.Type))),
	)
	defer span.End()

	if err := r.next.Create(ctx, report); err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("report.id", int(report.ID)))
	return nil
}

func (r *TracingReportRepository) FindByID(ctx context.Context, id uint) (*domain.Report, error) {
	ctx, span := tracer.Start(ctx, "repository.Report.FindByID",
		trace.WithAttributes(attribute.Int("report.id", int(id))),
	)
	defer span.End()

	report, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
	}
	return report, err
}

func (r *TracingReportRepository) FindAll(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	ctx, span := tracer.Start(ctx, "repository.Report.FindAll",
		trace.WithAttributes(
			attribute.String("filter.type", string(filter.Type)),
			attribute.String("filter.status", string(filter.Status)),
		),
	)
	defer span.End()

	reports, err := r.next.FindAll(ctx, filter)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("reports.count", len(reports)))
	return reports, nil
}

func (r *TracingReportRepository) Update(ctx context.Context, report *domain.Report) error {
	ctx, span := tracer.Start(ctx, "repository.Report.Update",
		trace.WithAttributes(attribute.Int("report.id", int(report.ID))),
	)
	defer span.End()

	err := r.next.Update(ctx, report)
	if err != nil {
		recordError(span, err)
	}
	return err
}

func (r *TracingReportRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Report.Delete",
		trace.WithAttributes(attribute.Int("report.id", int(id))),
	)
	defer span.End()

	err := r.next.Delete(ctx, id)
	if err != nil {
		recordError(span, err)
	}
	return err
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
