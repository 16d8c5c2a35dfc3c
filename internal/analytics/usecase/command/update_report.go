package command

import (
	"context"

	"gorm.io/datatypes"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/pkg/apperror"
)

// UpdateReportCommand is a partial update. Description and Data are only
// applied when their Set flag is true, so they can be cleared with null.
type UpdateReportCommand struct {
	ID             uint
	Title          *string
	Type           *domain.ReportType
	Status         *domain.ReportStatus
	Description    *string
	DescriptionSet bool
	Data           datatypes.JSON
	DataSet        bool
}

func (cmd UpdateReportCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	if cmd.Title != nil {
		validateTitle(errs, *cmd.Title)
	}
	if cmd.Type != nil {
		validateType(errs, *cmd.Type)
	}
	if cmd.Status != nil {
		validateStatus(errs, *cmd.Status)
	}
	return errs
}

// UpdateReportHandler handles update report command
type UpdateReportHandler struct {
	repo domain.ReportRepository
}

func NewUpdateReportHandler(repo domain.ReportRepository) *UpdateReportHandler {
	return &UpdateReportHandler{repo: repo}
}

// Handle executes the update report command
func (h *UpdateReportHandler) Handle(ctx context.Context, cmd UpdateReportCommand) (*domain.Report, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	report, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		report.Title = *cmd.Title
	}
	if cmd.Type != nil {
		report.Type = *cmd.Type
	}
	if cmd.Status != nil {
		report.Status = *cmd.Status
	}
	if cmd.DescriptionSet {
		report.Description = cmd.Description
	}
	if cmd.DataSet {
		report.Data = cmd.Data
	}

	if err := h.repo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
