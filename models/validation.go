package models

import (
	"time"
)

// ValidationStatus enumerates the states of an alumni validation request.
type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "pending"
	ValidationApproved ValidationStatus = "approved"
	ValidationRejected ValidationStatus = "rejected"
)

// AlumniValidation represents a request to have alumni status confirmed.
type AlumniValidation struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	Status    ValidationStatus `json:"status"`
	Note      string           `json:"note,omitempty"`
	DecidedBy string           `json:"decided_by,omitempty"`
	DecidedAt *time.Time       `json:"decided_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`

	// Requester identity, joined in for the admin listing.
	UserEmail     string `json:"user_email,omitempty"`
	UserFirstname string `json:"user_firstname,omitempty"`
	UserLastname  string `json:"user_lastname,omitempty"`
}
