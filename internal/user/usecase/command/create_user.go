package command

import (
	"context"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/apperror"
)

// CreateUserCommand creates a user with an explicit role and no password
// confirmation. Used by operator tooling.
type CreateUserCommand struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

func (cmd CreateUserCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	validateUsername(errs, cmd.Username)
	validateEmail(errs, cmd.Email)
	validatePassword(errs, cmd.Password)
	validateRole(errs, cmd.Role)
	return errs
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo domain.UserRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}
	return createUser(ctx, h.repo, cmd.Username, cmd.Email, cmd.Password, cmd.FirstName, cmd.LastName, cmd.Role)
}
