package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alumnet/portal/models"
)

// InventoryRepository interface defines inventory item database operations
type InventoryRepository interface {
	GetAll(ctx context.Context) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, id int) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id int) error
	AdjustQuantity(ctx context.Context, id int, delta int) error
	CountByLocation(ctx context.Context, locationID int) (int, error)
	CountByCategory(ctx context.Context, categoryID int) (int, error)
}

// inventoryRepository implements InventoryRepository interface
type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// GetAll retrieves all inventory items
func (r *inventoryRepository) GetAll(ctx context.Context) ([]models.InventoryItem, error) {
	query := `
		SELECT id, name, category_id, location_id, quantity, created_at, updated_at
		FROM inventory
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory: %w", err)
	}

	return items, nil
}

// GetByID retrieves an inventory item by ID
func (r *inventoryRepository) GetByID(ctx context.Context, id int) (*models.InventoryItem, error) {
	query := `
		SELECT id, name, category_id, location_id, quantity, created_at, updated_at
		FROM inventory
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	item, err := scanInventoryItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

// Create creates a new inventory item
func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (name, category_id, location_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.CategoryID,
		item.LocationID,
		item.Quantity,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	item.ID = int(id)
	return nil
}

// Update updates an existing inventory item
func (r *inventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = ?, category_id = ?, location_id = ?, quantity = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.CategoryID,
		item.LocationID,
		item.Quantity,
		now,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d: %w", item.ID, ErrNotFound)
	}

	item.UpdatedAt = &now
	return nil
}

// Delete deletes an inventory item by ID
func (r *inventoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}

	return nil
}

// AdjustQuantity changes an item's quantity by delta
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, id int, delta int) error {
	query := `
		UPDATE inventory
		SET quantity = quantity + ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, delta, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}

	return nil
}

// CountByLocation returns the number of items referencing a location
func (r *inventoryRepository) CountByLocation(ctx context.Context, locationID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory WHERE location_id = ?`, locationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items by location: %w", err)
	}
	return count, nil
}

// CountByCategory returns the number of items referencing a category
func (r *inventoryRepository) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items by category: %w", err)
	}
	return count, nil
}

// scanInventoryItem scans a row into an item, converting NULL columns.
func scanInventoryItem(scan func(...interface{}) error) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var categoryID, locationID sql.NullInt64
	var updatedAt sql.NullTime

	err := scan(
		&item.ID,
		&item.Name,
		&categoryID,
		&locationID,
		&item.Quantity,
		&item.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := int(categoryID.Int64)
		item.CategoryID = &id
	}
	if locationID.Valid {
		id := int(locationID.Int64)
		item.LocationID = &id
	}
	if updatedAt.Valid {
		item.UpdatedAt = &updatedAt.Time
	}

	return &item, nil
}
