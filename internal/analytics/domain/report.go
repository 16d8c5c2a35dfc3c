package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// ReportType classifies what a report covers.
type ReportType string

const (
	ReportInventory ReportType = "inventory"
	ReportSales     ReportType = "sales"
	ReportUsage     ReportType = "usage"
	ReportForecast  ReportType = "forecast"
)

const DefaultReportType = ReportInventory

var reportTypeLabels = map[ReportType]string{
	ReportInventory: "Inventory Report",
	ReportSales:     "Sales Report",
	ReportUsage:     "Usage Report",
	ReportForecast:  "Forecast Report",
}

func (t ReportType) Valid() bool {
	_, ok := reportTypeLabels[t]
	return ok
}

func (t ReportType) Label() string {
	if label, ok := reportTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ReportStatus tracks report generation.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusCompleted ReportStatus = "completed"
	StatusFailed    ReportStatus = "failed"
)

const DefaultReportStatus = StatusPending

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Report is a generated analytics document.
type Report struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Title             string         `json:"title" gorm:"size:200;not null"`
	Type              ReportType     `json:"type" gorm:"size:50;not null;index"`
	Status            ReportStatus   `json:"status" gorm:"size:20;not null;index"`
	Description       *string        `json:"description"`
	Data              datatypes.JSON `json:"data" gorm:"type:jsonb"`
	CreatedByID       *uint          `json:"created_by" gorm:"index"`
	CreatedByUsername *string        `json:"created_by_username" gorm:"size:150"`
	CreatedAt         time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// TableName specifies the table name
func (Report) TableName() string {
	return "reports"
}

// ReportFilter narrows a listing; empty fields match everything.
type ReportFilter struct {
	Type   ReportType
	Status ReportStatus
}

// ReportRepository defines the contract for report data access
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id uint) (*Report, error)
	FindAll(ctx context.Context, filter ReportFilter) ([]Report, error)
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id uint) error
}
