package models

import (
	"time"
)

// Location represents an inventory storage location.
type Location struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category represents an inventory category.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LocationForm represents form data for creating locations.
type LocationForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate validates the location form data.
func (f *LocationForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}
	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	return errors
}

// CategoryForm represents form data for creating categories.
type CategoryForm struct {
	Name string `json:"name"`
}

// Validate validates the category form data.
func (f *CategoryForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}
	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	return errors
}
