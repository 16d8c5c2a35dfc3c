package command

import (
	"context"

	"github.com/tair/population/internal/analytics/domain"
)

// DeleteReportCommand represents the command to delete a report
type DeleteReportCommand struct {
	ID uint
}

// DeleteReportHandler handles delete report command
type DeleteReportHandler struct {
	repo domain.ReportRepository
}

func NewDeleteReportHandler(repo domain.ReportRepository) *DeleteReportHandler {
	return &DeleteReportHandler{repo: repo}
}

func (h *DeleteReportHandler) Handle(ctx context.Context, cmd DeleteReportCommand) error {
	return h.repo.Delete(ctx, cmd.ID)
}
