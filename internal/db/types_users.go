package db

import (
	"time"

	"github.com/google/uuid"
)

// User role constants
const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

var userRoles = map[string]bool{
	RoleJobSeeker: true,
	RoleEmployer:  true,
	RoleAdmin:     true,
}

// ValidRole reports whether r is a known user role
func ValidRole(r string) bool {
	return userRoles[r]
}

// User represents a role-tagged account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Active       bool      `json:"active"`

	// Free-form preference bags, stored as JSONB
	NotificationPreferences JSONMap `json:"notification_preferences,omitempty"`
	PrivacySettings         JSONMap `json:"privacy_settings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListUsersOptions filters the admin user listing
type ListUsersOptions struct {
	Role   *string
	Active *bool
	Limit  int
	Offset int
}
