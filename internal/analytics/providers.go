package analytics

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/internal/analytics/repository"
	"github.com/tair/population/internal/analytics/usecase/command"
	"github.com/tair/population/internal/analytics/usecase/query"
)

// ProvideReportRepository provides the traced report repository
func ProvideReportRepository(db *gorm.DB) domain.ReportRepository {
	return repository.NewTracingReportRepository(repository.NewGormReportRepository(db))
}

// Wire sets
var AllHandlersSet = wire.NewSet(
	ProvideReportRepository,
	command.NewCreateReportHandler,
	command.NewUpdateReportHandler,
	command.NewDeleteReportHandler,
	query.NewGetReportHandler,
	query.NewListReportsHandler,
)
