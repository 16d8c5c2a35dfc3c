//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/population/internal/inventory/delivery/http"
	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/pkg/middleware"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	publisher domain.EventPublisher,
	authenticator *middleware.Authenticator,
	reg prometheus.Registerer,
) (*http.InventoryHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
