package domain

import (
	"context"
	"time"
)

// Role types
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// DefaultRole is assigned when registration names no role.
const DefaultRole = RoleManager

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// User is an operator of the back office.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Password     string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"size:150;not null"`
	LastName     string    `json:"last_name" gorm:"size:150;not null"`
	Role         string    `json:"role" gorm:"size:20;not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	DateJoined   time.Time `json:"date_joined" gorm:"autoCreateTime"`
	LastModified time.Time `json:"last_modified" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
