// Package models defines the domain types exchanged with the PADIPS backend.
package models

import "time"

// Role classifies an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status is the moderation state of an account. Transitions happen only on
// the server; the client just renders whatever it gets back.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// UserProfile is the account record as returned by the backend.
type UserProfile struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Status    Status     `json:"status"`
	IsBlocked bool       `json:"isBlocked"`
	DOB       *time.Time `json:"dob,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session pairs an opaque auth token with the profile it belongs to.
type Session struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
