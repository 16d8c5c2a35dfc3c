package command

import (
	"context"

	"gorm.io/datatypes"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/pkg/apperror"
)

// CreateReportCommand creates a report owned by the calling user. Empty type
// and status take their defaults.
type CreateReportCommand struct {
	Title             string
	Type              domain.ReportType
	Status            domain.ReportStatus
	Description       *string
	Data              datatypes.JSON
	CreatedByID       uint
	CreatedByUsername string
}

func (cmd CreateReportCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	validateTitle(errs, cmd.Title)
	if cmd.Type != "" {
		validateType(errs, cmd.Type)
	}
	if cmd.Status != "" {
		validateStatus(errs, cmd.Status)
	}
	return errs
}

// CreateReportHandler handles create report command
type CreateReportHandler struct {
	repo domain.ReportRepository
}

func NewCreateReportHandler(repo domain.ReportRepository) *CreateReportHandler {
	return &CreateReportHandler{repo: repo}
}

// Handle executes the create report command
func (h *CreateReportHandler) Handle(ctx context.Context, cmd CreateReportCommand) (*domain.Report, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		Title:       cmd.Title,
		Type:        cmd.Type,
		Status:      cmd.Status,
		Description: cmd.Description,
		Data:        cmd.Data,
	}
	if report.Type == "" {
		report.Type = domain.DefaultReportType
	}
	if report.Status == "" {
		report.Status = domain.DefaultReportStatus
	}
	if cmd.CreatedByID != 0 {
		id, username := cmd.CreatedByID, cmd.CreatedByUsername
		report.CreatedByID = &id
		report.CreatedByUsername = &username
	}

	if err := h.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
