package models

import (
	"time"
)

// FlashMessage represents a flash message for user feedback.
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDateTime formats a time as DD.MM.YYYY HH:MM (portal display format).
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// ParseDate parses a YYYY-MM-DD string into a time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// ParseDateTime parses a YYYY-MM-DD HH:MM:SS string into a time.Time.
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04:05", value)
}
