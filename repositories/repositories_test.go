package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alumnet/portal/database"
	"github.com/alumnet/portal/models"
)

// testSchema mirrors database/migrations in sqlite dialect; the repositories
// only speak portable placeholder SQL, so the tests run against a throwaway
// sqlite file instead of a MySQL server.
const testSchema = `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entra_subject TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		firstname TEXT NOT NULL DEFAULT '',
		lastname TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'member',
		alumni_validated INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE inventory_locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE inventory_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE inventory (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category_id INTEGER,
		location_id INTEGER,
		quantity INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP
	);

	CREATE TABLE audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TIMESTAMP NOT NULL,
		action TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL DEFAULT 0,
		user_firstname TEXT NOT NULL DEFAULT '',
		user_lastname TEXT NOT NULL DEFAULT '',
		user_email TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE alumni_validations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		note TEXT NOT NULL DEFAULT '',
		decided_by TEXT NOT NULL DEFAULT '',
		decided_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	);
`

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	t.Cleanup(func() {
		os.Remove(dbPath)
	})

	db, err := database.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	return db
}

func TestInventoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	// Test Create
	item := &models.InventoryItem{
		Name:     "Beamer",
		Quantity: 2,
	}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Failed to create inventory item: %v", err)
	}
	if item.ID == 0 {
		t.Error("Expected item ID to be set after creation")
	}

	// Test GetByID
	retrieved, err := repo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to get inventory item by ID: %v", err)
	}
	if retrieved.Name != item.Name {
		t.Errorf("Expected name %s, got %s", item.Name, retrieved.Name)
	}

	// Test GetAll
	items, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all inventory items: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("Expected 1 inventory item, got %d", len(items))
	}

	// Test Update
	item.Name = "Beamer (neu)"
	item.Quantity = 3
	if err := repo.Update(ctx, item); err != nil {
		t.Fatalf("Failed to update inventory item: %v", err)
	}
	updated, err := repo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("Failed to get updated inventory item: %v", err)
	}
	if updated.Name != "Beamer (neu)" || updated.Quantity != 3 {
		t.Errorf("Update not persisted, got %s/%d", updated.Name, updated.Quantity)
	}
	if updated.UpdatedAt == nil {
		t.Error("Expected updated_at to be set after update")
	}

	// Test AdjustQuantity
	if err := repo.AdjustQuantity(ctx, item.ID, -2); err != nil {
		t.Fatalf("Failed to adjust quantity: %v", err)
	}
	adjusted, _ := repo.GetByID(ctx, item.ID)
	if adjusted.Quantity != 1 {
		t.Errorf("Expected quantity 1 after adjustment, got %d", adjusted.Quantity)
	}

	// Test Delete
	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Failed to delete inventory item: %v", err)
	}

	// Verify deletion surfaces ErrNotFound
	_, err = repo.GetByID(ctx, item.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for deleted item, got %v", err)
	}
}

func TestLocationRepository(t *testing.T) {
	db := setupTestDB(t)
	locationRepo := NewLocationRepository(db)
	inventoryRepo := NewInventoryRepository(db)
	ctx := context.Background()

	location := &models.Location{Name: "Keller", Description: "Vereinsheim"}
	if err := locationRepo.Create(ctx, location); err != nil {
		t.Fatalf("Failed to create location: %v", err)
	}

	locations, err := locationRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get locations: %v", err)
	}
	if len(locations) != 1 || locations[0].Name != "Keller" {
		t.Errorf("Unexpected locations: %+v", locations)
	}

	// An item referencing the location is counted as usage
	item := &models.InventoryItem{Name: "Zelt", LocationID: &location.ID, Quantity: 1}
	if err := inventoryRepo.Create(ctx, item); err != nil {
		t.Fatalf("Failed to create inventory item: %v", err)
	}

	inUse, err := inventoryRepo.CountByLocation(ctx, location.ID)
	if err != nil {
		t.Fatalf("Failed to count items by location: %v", err)
	}
	if inUse != 1 {
		t.Errorf("Expected 1 item in location, got %d", inUse)
	}

	if err := locationRepo.Delete(ctx, location.ID); err != nil {
		t.Fatalf("Failed to delete location: %v", err)
	}
	if err := locationRepo.Delete(ctx, location.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &models.Category{Name: "Technik"}
	if err := repo.Create(ctx, category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, category.ID)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if retrieved.Name != "Technik" {
		t.Errorf("Expected name Technik, got %s", retrieved.Name)
	}

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}

	_, err = repo.GetByID(ctx, category.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for deleted category, got %v", err)
	}
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		EntraSubject: "sub-123",
		Email:        "max@example.org",
		Firstname:    "Max",
		Lastname:     "Mustermann",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.Role != models.RoleMember {
		t.Errorf("Expected default role member, got %s", user.Role)
	}

	bySubject, err := repo.GetBySubject(ctx, "sub-123")
	if err != nil {
		t.Fatalf("Failed to get user by subject: %v", err)
	}
	if bySubject.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, bySubject.ID)
	}

	_, err = repo.GetBySubject(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown subject, got %v", err)
	}

	// Promote to validated alumni
	if err := repo.SetRole(ctx, user.ID, models.RoleAlumni, true); err != nil {
		t.Fatalf("Failed to set role: %v", err)
	}
	promoted, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get promoted user: %v", err)
	}
	if promoted.Role != models.RoleAlumni || !promoted.AlumniValidated {
		t.Errorf("Expected validated alumni, got %s/%v", promoted.Role, promoted.AlumniValidated)
	}
}

func TestValidationRepository(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewValidationRepository(db)
	ctx := context.Background()

	user := &models.User{EntraSubject: "sub-9", Email: "eva@example.org", Firstname: "Eva", Lastname: "Beispiel"}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	validation := &models.AlumniValidation{UserID: user.ID, Note: "Abschluss 2019"}
	if err := repo.Create(ctx, validation); err != nil {
		t.Fatalf("Failed to create validation: %v", err)
	}
	if validation.Status != models.ValidationPending {
		t.Errorf("Expected pending status, got %s", validation.Status)
	}

	pending, err := repo.HasPending(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to check pending: %v", err)
	}
	if !pending {
		t.Error("Expected a pending validation")
	}

	list, err := repo.ListPending(ctx)
	if err != nil {
		t.Fatalf("Failed to list pending validations: %v", err)
	}
	if len(list) != 1 || list[0].UserEmail != "eva@example.org" {
		t.Errorf("Unexpected pending list: %+v", list)
	}

	if err := repo.Decide(ctx, validation.ID, models.ValidationApproved, "admin@example.org", "ok"); err != nil {
		t.Fatalf("Failed to decide validation: %v", err)
	}

	// Deciding twice must fail: the row is no longer pending
	err = repo.Decide(ctx, validation.ID, models.ValidationRejected, "admin@example.org", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double decision, got %v", err)
	}

	decided, err := repo.GetByID(ctx, validation.ID)
	if err != nil {
		t.Fatalf("Failed to get decided validation: %v", err)
	}
	if decided.Status != models.ValidationApproved || decided.DecidedAt == nil {
		t.Errorf("Decision not persisted: %+v", decided)
	}
}
