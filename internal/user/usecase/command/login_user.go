package command

import (
	"context"
	"fmt"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

func (cmd LoginUserCommand) Validate() *apperror.ValidationError {
	errs := apperror.NewValidationError()
	validateRequired(errs, "username", cmd.Username)
	if cmd.Password == "" {
		errs.Add("password", "This field is required.")
	}
	return errs
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token string
	User  *domain.User
}

// ErrInvalidCredentials is returned for unknown users, wrong passwords and
// inactive accounts alike.
var ErrInvalidCredentials = apperror.Unauthorized("Invalid username or password")

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if err := cmd.Validate().OrNil(); err != nil {
		return nil, err
	}

	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if _, ok := apperror.IsNotFound(err); ok {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}
