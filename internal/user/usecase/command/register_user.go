package command

import (
	"context"
	"fmt"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	Role            string // Optional, defaults to manager
}

func (cmd RegisterUserCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	validateUsername(errs, cmd.Username)
	validateEmail(errs, cmd.Email)
	validatePassword(errs, cmd.Password)
	validateRequired(errs, "password_confirm", cmd.PasswordConfirm)
	validateRequired(errs, "first_name", cmd.FirstName)
	validateRequired(errs, "last_name", cmd.LastName)
	validateRole(errs, cmd.Role)
	if errs.Empty() && cmd.Password != cmd.PasswordConfirm {
		errs.Add("password_confirm", "Passwords must match.")
	}
	return errs
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}
	return createUser(ctx, h.repo, cmd.Username, cmd.Email, cmd.Password, cmd.FirstName, cmd.LastName, cmd.Role)
}

func createUser(ctx context.Context, repo domain.UserRepository, username, email, password, firstName, lastName, role string) (*domain.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if role == "" {
		role = domain.DefaultRole
	}

	user := &domain.User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		IsActive:  true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
