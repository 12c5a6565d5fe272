package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alumnet/portal/models"
)

func seedAuditEntries(t *testing.T, repo AuditRepository) []models.AuditLogEntry {
	t.Helper()
	ctx := context.Background()

	entries := []models.AuditLogEntry{
		{Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Action: models.ActionCreate, TargetType: models.TargetTypeInventory, TargetID: 1, UserEmail: "a@example.org"},
		{Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), Action: models.ActionCreate, TargetType: models.TargetTypeInventory, TargetID: 2, UserEmail: "a@example.org"},
		{Timestamp: time.Date(2024, 3, 2, 11, 0, 0, 0, time.UTC), Action: models.ActionCreate, TargetType: models.TargetTypeInventory, TargetID: 3, UserEmail: "b@example.org"},
		{Timestamp: time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC), Action: models.ActionUpdate, TargetType: models.TargetTypeInventory, TargetID: 1, UserEmail: "b@example.org"},
		{Timestamp: time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC), Action: models.ActionUpdate, TargetType: models.TargetTypeInventory, TargetID: 2, UserEmail: "a@example.org"},
	}

	for i := range entries {
		if err := repo.Create(ctx, &entries[i]); err != nil {
			t.Fatalf("Failed to seed audit entry %d: %v", i, err)
		}
	}

	return entries
}

func TestAuditRepository_ListUnfiltered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	seedAuditEntries(t, repo)

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: 50}
	entries, err := repo.List(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to list audit entries: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}

	// Most recent first
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Errorf("Entries not ordered by timestamp descending at index %d", i)
		}
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to count audit entries: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected count 5, got %d", count)
	}
}

func TestAuditRepository_ActionFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	seedAuditEntries(t, repo)

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Action: "create", Limit: 50}
	entries, err := repo.List(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to list audit entries: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 create entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Action != models.ActionCreate {
			t.Errorf("Expected only create entries, got %s", entry.Action)
		}
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to count audit entries: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected count 3, got %d", count)
	}
}

func TestAuditRepository_DateRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	seedAuditEntries(t, repo)

	// The upper bound extends to the end of the day, so the 23:00 update on
	// 2024-03-02 is still included.
	filter := models.AuditFilter{
		TargetType: models.TargetTypeInventory,
		DateFrom:   "2024-03-02",
		DateTo:     "2024-03-02 23:59:59",
		Limit:      50,
	}

	entries, err := repo.List(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to list audit entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries on 2024-03-02, got %d", len(entries))
	}

	from, _ := models.ParseDate(filter.DateFrom)
	to, _ := models.ParseDateTime(filter.DateTo)
	for _, entry := range entries {
		if entry.Timestamp.Before(from) || entry.Timestamp.After(to) {
			t.Errorf("Entry %d at %s outside requested range", entry.ID, entry.Timestamp)
		}
	}
}

func TestAuditRepository_LimitAndOffset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	seedAuditEntries(t, repo)

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: 2}
	entries, err := repo.List(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to list audit entries: %v", err)
	}

	count, err := repo.Count(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to count audit entries: %v", err)
	}

	// The page never exceeds the limit while the count reports the full total.
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries with limit 2, got %d", len(entries))
	}
	if count != 5 {
		t.Errorf("Expected count 5 regardless of limit, got %d", count)
	}

	filter.Offset = 4
	tail, err := repo.List(ctx, filter)
	if err != nil {
		t.Fatalf("Failed to list with offset: %v", err)
	}
	if len(tail) != 1 {
		t.Errorf("Expected 1 entry at offset 4, got %d", len(tail))
	}
}

func TestAuditRepository_IgnoresOtherTargetTypes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	seedAuditEntries(t, repo)

	other := &models.AuditLogEntry{
		Action:     models.ActionDelete,
		TargetType: "membership",
		TargetID:   9,
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	count, err := repo.Count(ctx, models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: 50})
	if err != nil {
		t.Fatalf("Failed to count audit entries: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected count 5 for inventory target type, got %d", count)
	}
}

func TestAuditRepository_CreateSetsTimestamp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	entry := &models.AuditLogEntry{
		Action:     models.ActionCreate,
		TargetType: models.TargetTypeInventory,
		TargetID:   1,
	}
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	if entry.ID == 0 {
		t.Error("Expected entry ID to be set after creation")
	}
	if entry.Timestamp.IsZero() {
		t.Error("Expected timestamp to be defaulted on creation")
	}
}
