package query

import (
	"context"

	"github.com/tair/population/internal/analytics/domain"
)

// GetReportQuery represents the query to get a report by ID
type GetReportQuery struct {
	ID uint
}

// GetReportHandler handles get report query
type GetReportHandler struct {
	repo domain.ReportRepository
}

func NewGetReportHandler(repo domain.ReportRepository) *GetReportHandler {
	return &GetReportHandler{repo: repo}
}

func (h *GetReportHandler) Handle(ctx context.Context, q GetReportQuery) (*domain.Report, error) {
	return h.repo.FindByID(ctx, q.ID)
}
