package repositories

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories struct holds all repository interfaces
type Repositories struct {
	Users      UserRepository
	Inventory  InventoryRepository
	Location   LocationRepository
	Category   CategoryRepository
	Audit      AuditRepository
	Validation ValidationRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Inventory:  NewInventoryRepository(db),
		Location:   NewLocationRepository(db),
		Category:   NewCategoryRepository(db),
		Audit:      NewAuditRepository(db),
		Validation: NewValidationRepository(db),
	}
}
