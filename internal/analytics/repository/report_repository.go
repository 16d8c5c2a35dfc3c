package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/population/internal/analytics/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/database"
)

// GormReportRepository implements ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *GormReportRepository) FindByID(ctx context.Context, id uint) (*domain.Report, error) {
	var report domain.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperror.NotFound("Report", id)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// FindAll lists reports newest first.
func (r *GormReportRepository) FindAll(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var reports []domain.Report
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (r *GormReportRepository) Update(ctx context.Context, report *domain.Report) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

func (r *GormReportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Report{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Report", id)
	}
	return nil
}
