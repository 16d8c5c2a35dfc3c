//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/population/internal/user/delivery/http"
	"github.com/tair/population/pkg/auth"
	"github.com/tair/population/pkg/middleware"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	tokens *auth.TokenManager,
	revoked auth.RevocationStore,
	reg prometheus.Registerer,
) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		middleware.NewAuthenticator,
		http.NewUserHandler,
	)
	return nil, nil
}
