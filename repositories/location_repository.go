package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alumnet/portal/models"
)

// LocationRepository interface defines inventory location database operations
type LocationRepository interface {
	GetAll(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id int) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id int) error
}

// locationRepository implements LocationRepository interface
type locationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) LocationRepository {
	return &locationRepository{db: db}
}

// GetAll retrieves all locations ordered by name
func (r *locationRepository) GetAll(ctx context.Context) ([]models.Location, error) {
	query := `
		SELECT id, name, description, created_at
		FROM inventory_locations
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var location models.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.Description, &location.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// GetByID retrieves a location by ID
func (r *locationRepository) GetByID(ctx context.Context, id int) (*models.Location, error) {
	query := `
		SELECT id, name, description, created_at
		FROM inventory_locations
		WHERE id = ?
	`

	var location models.Location
	err := r.db.QueryRowContext(ctx, query, id).Scan(&location.ID, &location.Name, &location.Description, &location.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("location %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

// Create creates a new location
func (r *locationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO inventory_locations (name, description, created_at)
		VALUES (?, ?, ?)
	`

	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query, location.Name, location.Description, location.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	location.ID = int(id)
	return nil
}

// Delete deletes a location by ID
func (r *locationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("location %d: %w", id, ErrNotFound)
	}

	return nil
}
