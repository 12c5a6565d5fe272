package models

import (
	"time"
)

// InventoryItem represents a single inventory record.
type InventoryItem struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	CategoryID *int       `json:"category_id,omitempty"`
	LocationID *int       `json:"location_id,omitempty"`
	Quantity   int        `json:"quantity"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// InventoryItemForm represents form data for creating/updating inventory items.
type InventoryItemForm struct {
	Name       string `json:"name"`
	CategoryID *int   `json:"category_id"`
	LocationID *int   `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// Validate validates the inventory item form data.
func (f *InventoryItemForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}
	if len(f.Name) > 200 {
		errors = append(errors, "Name must be less than 200 characters")
	}
	if f.Quantity < 0 {
		errors = append(errors, "Quantity must not be negative")
	}

	return errors
}
