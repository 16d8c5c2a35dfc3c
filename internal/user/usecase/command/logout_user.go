package command

import (
	"context"
	"fmt"

	"github.com/tair/population/pkg/auth"
)

// LogoutUserCommand revokes the token the caller authenticated with.
type LogoutUserCommand struct {
	Claims *auth.Claims
}

// LogoutUserHandler handles logout command
type LogoutUserHandler struct {
	revoked auth.RevocationStore
}

func NewLogoutUserHandler(revoked auth.RevocationStore) *LogoutUserHandler {
	return &LogoutUserHandler{revoked: revoked}
}

// Handle executes the logout command
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	if cmd.Claims == nil {
		return nil
	}
	if err := h.revoked.Revoke(ctx, cmd.Claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
