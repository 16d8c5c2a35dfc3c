package query

import (
	"context"

	"github.com/tair/population/internal/analytics/domain"
)

// ListReportsQuery filters the listing by type and status.
type ListReportsQuery struct {
	Type   string
	Status string
}

// ListReportsHandler handles list reports query
type ListReportsHandler struct {
	repo domain.ReportRepository
}

func NewListReportsHandler(repo domain.ReportRepository) *ListReportsHandler {
	return &ListReportsHandler{repo: repo}
}

// Handle returns matching reports, newest first. Unknown filter values
// simply match nothing.
func (h *ListReportsHandler) Handle(ctx context.Context, q ListReportsQuery) ([]domain.Report, error) {
	return h.repo.FindAll(ctx, domain.ReportFilter{
		Type:   domain.ReportType(q.Type),
		Status: domain.ReportStatus(q.Status),
	})
}
