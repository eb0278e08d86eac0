// Package models contains data structures for the application's domain records.
package models

import (
	"time"
)

// Role is the closed set of account roles. Gated operations compare against
// these constants instead of raw strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account.
type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	FullName        string `gorm:"not null" json:"full_name"`
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Role            Role   `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	ProfileImageURL string `json:"profile_image_url"`
	// PasswordResetHash stores the SHA-256 digest of the most recent reset
	// token; the raw token is never persisted.
	PasswordResetHash   *string    `json:"-"`
	PasswordResetExpiry *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	Blogs               []Blog     `gorm:"foreignKey:CreatedByID" json:"blogs,omitempty"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
