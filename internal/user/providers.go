package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/internal/user/repository"
	"github.com/tair/population/internal/user/usecase/command"
	"github.com/tair/population/internal/user/usecase/query"
)

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(repository.NewGormUserRepository(db))
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewRegisterUserHandler,
	command.NewLoginUserHandler,
	command.NewLogoutUserHandler,
	command.NewCreateUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
