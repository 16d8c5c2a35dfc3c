package command

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/internal/user/repository"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/auth"
	"github.com/tair/population/pkg/database"
)

func newTestRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return repository.NewGormUserRepository(db)
}

func validRegistration() RegisterUserCommand {
	return RegisterUserCommand{
		Username:        "jdoe",
		Email:           "jdoe@example.com",
		Password:        "s3cure-pass",
		PasswordConfirm: "s3cure-pass",
		FirstName:       "Jane",
		LastName:        "Doe",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterUserCommand)
		field  string
		msg    string
	}{
		{"missing username", func(c *RegisterUserCommand) { c.Username = "" }, "username", "This field is required."},
		{"bad username", func(c *RegisterUserCommand) { c.Username = "j doe" }, "username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."},
		{"bad email", func(c *RegisterUserCommand) { c.Email = "not-an-email" }, "email", "Enter a valid email address."},
		{"short password", func(c *RegisterUserCommand) { c.Password, c.PasswordConfirm = "abc", "abc" }, "password", "This password is too short. It must contain at least 8 characters."},
		{"long password", func(c *RegisterUserCommand) { c.Password = strings.Repeat("pässword", 9); c.PasswordConfirm = c.Password }, "password", "This password is too long. It must contain at most 72 bytes."},
		{"numeric password", func(c *RegisterUserCommand) { c.Password, c.PasswordConfirm = "12345678", "12345678" }, "password", "This password is entirely numeric."},
		{"mismatch", func(c *RegisterUserCommand) { c.PasswordConfirm = "something-else" }, "password_confirm", "Passwords must match."},
		{"missing first name", func(c *RegisterUserCommand) { c.FirstName = " " }, "first_name", "This field is required."},
		{"unknown role", func(c *RegisterUserCommand) { c.Role = "owner" }, "role", `"owner" is not a valid choice.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validRegistration()
			tt.mutate(&cmd)
			errs := cmd.Validate()
			if got := errs.Fields[tt.field]; got != tt.msg {
				t.Errorf("Fields[%s] = %q, want %q (all: %v)", tt.field, got, tt.msg, errs.Fields)
			}
		})
	}

	if errs := validRegistration().Validate(); !errs.Empty() {
		t.Errorf("valid command has errors: %v", errs.Fields)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)

	user, err := NewRegisterUserHandler(repo).Handle(ctx, validRegistration())
	if err != nil {
		t.Fatalf("register error = %v", err)
	}
	if user.Role != domain.RoleManager || !user.IsActive {
		t.Errorf("user = %+v, want active manager", user)
	}
	if user.Password == "s3cure-pass" {
		t.Error("password stored in plaintext")
	}

	login := NewLoginUserHandler(repo, tokens)
	resp, err := login.Handle(ctx, LoginUserCommand{Username: "jdoe", Password: "s3cure-pass"})
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	claims, err := tokens.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleManager {
		t.Errorf("claims = %+v", claims)
	}

	for _, bad := range []LoginUserCommand{
		{Username: "jdoe", Password: "wrong-pass"},
		{Username: "nobody", Password: "s3cure-pass"},
	} {
		if _, err := login.Handle(ctx, bad); err != ErrInvalidCredentials {
			t.Errorf("login(%s) error = %v, want ErrInvalidCredentials", bad.Username, err)
		}
	}

	if _, err := login.Handle(ctx, LoginUserCommand{}); err == nil {
		t.Error("empty login error = nil")
	} else if _, ok := apperror.IsValidation(err); !ok {
		t.Errorf("empty login error = %v, want validation", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	h := NewRegisterUserHandler(repo)

	if _, err := h.Handle(ctx, validRegistration()); err != nil {
		t.Fatalf("first register error = %v", err)
	}

	dup := validRegistration()
	dup.Email = "JDOE@example.com"
	_, err := h.Handle(ctx, dup)
	v, ok := apperror.IsValidation(err)
	if !ok {
		t.Fatalf("duplicate register error = %v, want validation", err)
	}
	if v.Fields["username"] != "A user with that username already exists." {
		t.Errorf("username error = %q", v.Fields["username"])
	}
	if v.Fields["email"] != "user with this email already exists." {
		t.Errorf("email error = %q", v.Fields["email"])
	}
}

func TestCreateAdmin(t *testing.T) {
	repo := newTestRepo(t)
	user, err := NewCreateUserHandler(repo).Handle(context.Background(), CreateUserCommand{
		Username: "root",
		Email:    "root@example.com",
		Password: "very-secret",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !user.IsAdmin() {
		t.Errorf("Role = %q, want admin", user.Role)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	store := auth.NewMemoryRevocationStore()
	tokens := auth.NewTokenManager("secret", time.Hour)
	token, _ := tokens.GenerateToken(1, "jdoe", domain.RoleManager)
	claims, _ := tokens.ValidateToken(token)
	ctx := context.Background()

	h := NewLogoutUserHandler(store)
	if err := h.Handle(ctx, LogoutUserCommand{Claims: claims}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, claims); !revoked {
		t.Error("token not revoked after logout")
	}
	if err := h.Handle(ctx, LogoutUserCommand{}); err != nil {
		t.Errorf("Handle(nil claims) error = %v", err)
	}
}
