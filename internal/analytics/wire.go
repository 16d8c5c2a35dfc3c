//go:build wireinject
// +build wireinject

package analytics

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/population/internal/analytics/delivery/http"
	"github.com/tair/population/pkg/middleware"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	authenticator *middleware.Authenticator,
	reg prometheus.Registerer,
) (*http.ReportHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewReportHandler,
	)
	return nil, nil
}
