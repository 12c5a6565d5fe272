package models

import (
	"time"
)

// AuditAction enumerates the state-changing operations recorded in the audit trail.
type AuditAction string

const (
	ActionCreate         AuditAction = "create"
	ActionUpdate         AuditAction = "update"
	ActionDelete         AuditAction = "delete"
	ActionAdjustQuantity AuditAction = "adjust_quantity"
)

// TargetTypeInventory is the target type written for inventory mutations.
const TargetTypeInventory = "inventory"

// AuditLogEntry is an immutable record of a single state-changing action.
// Actor identity is denormalized at write time so the entry stays readable
// after the user record changes or disappears.
type AuditLogEntry struct {
	ID            int64       `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Action        AuditAction `json:"action"`
	TargetType    string      `json:"target_type"`
	TargetID      int         `json:"target_id"`
	UserID        int         `json:"user_id"`
	UserFirstname string      `json:"user_firstname"`
	UserLastname  string      `json:"user_lastname"`
	UserEmail     string      `json:"user_email"`
}

// ActorName returns the actor's display name.
func (e *AuditLogEntry) ActorName() string {
	return e.UserFirstname + " " + e.UserLastname
}

// AuditFilter is the validated filter set for audit log reads.
// Constructed per request by the audit service; never persisted.
type AuditFilter struct {
	TargetType string
	Action     string
	DateFrom   string // "YYYY-MM-DD", empty when unset
	DateTo     string // "YYYY-MM-DD 23:59:59", empty when unset
	Limit      int
	Offset     int
}

// HasDateRange reports whether any timestamp bound is set.
func (f *AuditFilter) HasDateRange() bool {
	return f.DateFrom != "" || f.DateTo != ""
}

// Filtered reports whether the filter narrows the result set beyond the
// fixed target type.
func (f *AuditFilter) Filtered() bool {
	return f.Action != "" || f.HasDateRange()
}
