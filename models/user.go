package models

import (
	"time"
)

// Role classifies a portal user. Admin grants full access to the
// administrative pages (alumni validation, inventory, audit trail).
type Role string

const (
	RoleMember Role = "member"
	RoleAlumni Role = "alumni"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the known classifications.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// User represents a portal account, provisioned on first SSO login.
type User struct {
	ID              int       `json:"id"`
	EntraSubject    string    `json:"entra_subject"`
	Email           string    `json:"email"`
	Firstname       string    `json:"firstname"`
	Lastname        string    `json:"lastname"`
	Role            Role      `json:"role"`
	AlumniValidated bool      `json:"alumni_validated"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the user's full name, falling back to the email.
func (u *User) DisplayName() string {
	if u.Firstname == "" && u.Lastname == "" {
		return u.Email
	}
	return u.Firstname + " " + u.Lastname
}
