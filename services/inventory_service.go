package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alumnet/portal/metrics"
	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
)

// InventoryService interface defines inventory management business logic
type InventoryService interface {
	GetItems(ctx context.Context) ([]models.InventoryItem, error)
	GetItemByID(ctx context.Context, id int) (*models.InventoryItem, error)
	CreateItem(ctx context.Context, actor *models.User, form *models.InventoryItemForm) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, actor *models.User, id int, form *models.InventoryItemForm) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, actor *models.User, id int) error
	AdjustQuantity(ctx context.Context, actor *models.User, id int, delta int) error

	GetLocations(ctx context.Context) ([]models.Location, error)
	AddLocation(ctx context.Context, form *models.LocationForm) (*models.Location, error)
	DeleteLocation(ctx context.Context, id int) error

	GetCategories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, form *models.CategoryForm) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// inventoryService implements InventoryService interface
type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	locationRepo  repositories.LocationRepository
	categoryRepo  repositories.CategoryRepository
	auditRepo     repositories.AuditRepository
	log           *logrus.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	inventoryRepo repositories.InventoryRepository,
	locationRepo repositories.LocationRepository,
	categoryRepo repositories.CategoryRepository,
	auditRepo repositories.AuditRepository,
	log *logrus.Logger,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		locationRepo:  locationRepo,
		categoryRepo:  categoryRepo,
		auditRepo:     auditRepo,
		log:           log,
	}
}

// GetItems retrieves all inventory items
func (s *inventoryService) GetItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.inventoryRepo.GetAll(ctx)
}

// GetItemByID retrieves an inventory item by ID
func (s *inventoryService) GetItemByID(ctx context.Context, id int) (*models.InventoryItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid inventory item ID: %d", id)
	}
	return s.inventoryRepo.GetByID(ctx, id)
}

// CreateItem creates an inventory item and records the mutation in the audit trail
func (s *inventoryService) CreateItem(ctx context.Context, actor *models.User, form *models.InventoryItemForm) (*models.InventoryItem, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	item := &models.InventoryItem{
		Name:       strings.TrimSpace(form.Name),
		CategoryID: form.CategoryID,
		LocationID: form.LocationID,
		Quantity:   form.Quantity,
	}

	if err := s.inventoryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.record(ctx, actor, models.ActionCreate, item.ID)
	return item, nil
}

// UpdateItem updates an inventory item and records the mutation
func (s *inventoryService) UpdateItem(ctx context.Context, actor *models.User, id int, form *models.InventoryItemForm) (*models.InventoryItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid inventory item ID: %d", id)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory item not found: %w", err)
	}

	item.Name = strings.TrimSpace(form.Name)
	item.CategoryID = form.CategoryID
	item.LocationID = form.LocationID
	item.Quantity = form.Quantity

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.record(ctx, actor, models.ActionUpdate, item.ID)
	return item, nil
}

// DeleteItem deletes an inventory item and records the mutation
func (s *inventoryService) DeleteItem(ctx context.Context, actor *models.User, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid inventory item ID: %d", id)
	}

	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.record(ctx, actor, models.ActionDelete, id)
	return nil
}

// AdjustQuantity changes an item's quantity and records the mutation
func (s *inventoryService) AdjustQuantity(ctx context.Context, actor *models.User, id int, delta int) error {
	if id <= 0 {
		return fmt.Errorf("invalid inventory item ID: %d", id)
	}
	if delta == 0 {
		return fmt.Errorf("quantity adjustment must not be zero")
	}

	if err := s.inventoryRepo.AdjustQuantity(ctx, id, delta); err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}

	s.record(ctx, actor, models.ActionAdjustQuantity, id)
	return nil
}

// GetLocations retrieves all inventory locations
func (s *inventoryService) GetLocations(ctx context.Context) ([]models.Location, error) {
	return s.locationRepo.GetAll(ctx)
}

// AddLocation creates a new location with validation
func (s *inventoryService) AddLocation(ctx context.Context, form *models.LocationForm) (*models.Location, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	location := &models.Location{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

// DeleteLocation deletes a location unless inventory still references it
func (s *inventoryService) DeleteLocation(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid location ID: %d", id)
	}

	inUse, err := s.inventoryRepo.CountByLocation(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check location usage: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("location is still referenced by %d inventory items", inUse)
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	return nil
}

// GetCategories retrieves all inventory categories
func (s *inventoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// AddCategory creates a new category with validation
func (s *inventoryService) AddCategory(ctx context.Context, form *models.CategoryForm) (*models.Category, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	category := &models.Category{
		Name: strings.TrimSpace(form.Name),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// DeleteCategory deletes a category unless inventory still references it
func (s *inventoryService) DeleteCategory(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid category ID: %d", id)
	}

	inUse, err := s.inventoryRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("category is still referenced by %d inventory items", inUse)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

// record writes the audit entry for a completed mutation. The trail is
// best-effort: a failed write is logged but does not roll back the mutation.
func (s *inventoryService) record(ctx context.Context, actor *models.User, action models.AuditAction, targetID int) {
	entry := &models.AuditLogEntry{
		Action:     action,
		TargetType: models.TargetTypeInventory,
		TargetID:   targetID,
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserFirstname = actor.Firstname
		entry.UserLastname = actor.Lastname
		entry.UserEmail = actor.Email
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"target_id": targetID,
		}).Error("failed to write audit log entry")
		return
	}

	metrics.AuditEntriesWritten.WithLabelValues(string(action)).Inc()
}
