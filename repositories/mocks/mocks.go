// Package mocks provides testify mocks for the repository interfaces,
// used by the service tests.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/alumnet/portal/models"
)

// MockAuditRepository mocks repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

// NewMockAuditRepository creates a mock that asserts its expectations on cleanup
func NewMockAuditRepository(t *testing.T) *MockAuditRepository {
	m := &MockAuditRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogEntry), args.Error(1)
}

func (m *MockAuditRepository) Count(ctx context.Context, filter models.AuditFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockInventoryRepository mocks repositories.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

// NewMockInventoryRepository creates a mock that asserts its expectations on cleanup
func NewMockInventoryRepository(t *testing.T) *MockInventoryRepository {
	m := &MockInventoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInventoryRepository) GetAll(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id int) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) AdjustQuantity(ctx context.Context, id int, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockInventoryRepository) CountByLocation(ctx context.Context, locationID int) (int, error) {
	args := m.Called(ctx, locationID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

// MockLocationRepository mocks repositories.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

// NewMockLocationRepository creates a mock that asserts its expectations on cleanup
func NewMockLocationRepository(t *testing.T) *MockLocationRepository {
	m := &MockLocationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository mocks repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

// NewMockCategoryRepository creates a mock that asserts its expectations on cleanup
func NewMockCategoryRepository(t *testing.T) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository mocks repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations on cleanup
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id int, role models.Role, validated bool) error {
	args := m.Called(ctx, id, role, validated)
	return args.Error(0)
}

// MockValidationRepository mocks repositories.ValidationRepository
type MockValidationRepository struct {
	mock.Mock
}

// NewMockValidationRepository creates a mock that asserts its expectations on cleanup
func NewMockValidationRepository(t *testing.T) *MockValidationRepository {
	m := &MockValidationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockValidationRepository) ListPending(ctx context.Context) ([]models.AlumniValidation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AlumniValidation), args.Error(1)
}

func (m *MockValidationRepository) GetByID(ctx context.Context, id int) (*models.AlumniValidation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AlumniValidation), args.Error(1)
}

func (m *MockValidationRepository) Create(ctx context.Context, validation *models.AlumniValidation) error {
	args := m.Called(ctx, validation)
	return args.Error(0)
}

func (m *MockValidationRepository) Decide(ctx context.Context, id int, status models.ValidationStatus, decidedBy, note string) error {
	args := m.Called(ctx, id, status, decidedBy, note)
	return args.Error(0)
}

func (m *MockValidationRepository) HasPending(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
