package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
	"github.com/alumnet/portal/repositories/mocks"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFilters_Defaults(t *testing.T) {
	svc := NewAuditService(nil, nil, quietLogger())

	filter := svc.ParseFilters(url.Values{})

	assert.Equal(t, models.TargetTypeInventory, filter.TargetType)
	assert.Equal(t, AuditPageSize, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Empty(t, filter.Action)
	assert.Empty(t, filter.DateFrom)
	assert.Empty(t, filter.DateTo)
	assert.False(t, filter.Filtered())
}

func TestParseFilters_ActionPassedThroughUnfiltered(t *testing.T) {
	svc := NewAuditService(nil, nil, quietLogger())

	// Unknown actions are not rejected here; they simply match zero rows.
	for _, action := range []string{"create", "update", "delete", "adjust_quantity", "bogus"} {
		filter := svc.ParseFilters(url.Values{"action": {action}})
		assert.Equal(t, action, filter.Action)
		assert.True(t, filter.Filtered())
	}
}

func TestParseFilters_ValidDates(t *testing.T) {
	svc := NewAuditService(nil, nil, quietLogger())

	filter := svc.ParseFilters(url.Values{
		"date_from": {"2024-01-01"},
		"date_to":   {"2024-01-31"},
	})

	assert.Equal(t, "2024-01-01", filter.DateFrom)
	// date_to covers the whole day
	assert.Equal(t, "2024-01-31 23:59:59", filter.DateTo)
	assert.True(t, filter.HasDateRange())
}

func TestParseFilters_MalformedDatesSilentlyDropped(t *testing.T) {
	svc := NewAuditService(nil, nil, quietLogger())

	malformed := []string{
		"2024/01/01",
		"01.01.2024",
		"2024-1-1",
		"not-a-date",
		"2024-01-01 10:00:00",
		"2024-01-01'; DROP TABLE audit_log; --",
	}

	for _, value := range malformed {
		filter := svc.ParseFilters(url.Values{"date_from": {value}, "date_to": {value}})
		assert.Empty(t, filter.DateFrom, "date_from %q should be dropped", value)
		assert.Empty(t, filter.DateTo, "date_to %q should be dropped", value)
	}

	// A dropped date filter is equivalent to no date filter at all.
	dropped := svc.ParseFilters(url.Values{"date_from": {"2024/01/01"}})
	unfiltered := svc.ParseFilters(url.Values{})
	assert.Equal(t, unfiltered, dropped)
}

// AuditPageTestSuite is a test suite for the GetPage pipeline
type AuditPageTestSuite struct {
	suite.Suite
	service           AuditService
	mockAuditRepo     *mocks.MockAuditRepository
	mockInventoryRepo *mocks.MockInventoryRepository
}

// SetupTest sets up the test suite before each test
func (suite *AuditPageTestSuite) SetupTest() {
	suite.mockAuditRepo = mocks.NewMockAuditRepository(suite.T())
	suite.mockInventoryRepo = mocks.NewMockInventoryRepository(suite.T())
	suite.service = NewAuditService(suite.mockAuditRepo, suite.mockInventoryRepo, quietLogger())
}

func (suite *AuditPageTestSuite) TestGetPage_ResolvesTargetNames() {
	entries := []models.AuditLogEntry{
		{ID: 2, Timestamp: time.Date(2024, 3, 2, 12, 30, 0, 0, time.UTC), Action: models.ActionUpdate, TargetType: models.TargetTypeInventory, TargetID: 7, UserFirstname: "Anna", UserLastname: "Schmidt", UserEmail: "anna@example.org"},
		{ID: 1, Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Action: models.ActionCreate, TargetType: models.TargetTypeInventory, TargetID: 7, UserFirstname: "Anna", UserLastname: "Schmidt", UserEmail: "anna@example.org"},
	}

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: AuditPageSize}
	suite.mockAuditRepo.On("List", mock.Anything, filter).Return(entries, nil)
	suite.mockAuditRepo.On("Count", mock.Anything, filter).Return(2, nil)
	suite.mockInventoryRepo.On("GetByID", mock.Anything, 7).Return(&models.InventoryItem{ID: 7, Name: "Beamer"}, nil)

	page, err := suite.service.GetPage(context.Background(), filter)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, page.Total)
	assert.Equal(suite.T(), 2, page.Shown)
	assert.False(suite.T(), page.Filtered)
	assert.Len(suite.T(), page.Rows, 2)
	assert.Equal(suite.T(), "Beamer", page.Rows[0].TargetName)
	assert.Equal(suite.T(), "Anna Schmidt", page.Rows[0].ActorName)
	assert.Equal(suite.T(), "02.03.2024 12:30", page.Rows[0].Time)
}

func (suite *AuditPageTestSuite) TestGetPage_DeletedTargetResolvesToPlaceholder() {
	entries := []models.AuditLogEntry{
		{ID: 3, Timestamp: time.Now(), Action: models.ActionDelete, TargetType: models.TargetTypeInventory, TargetID: 42},
	}

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: AuditPageSize}
	suite.mockAuditRepo.On("List", mock.Anything, filter).Return(entries, nil)
	suite.mockAuditRepo.On("Count", mock.Anything, filter).Return(1, nil)
	suite.mockInventoryRepo.On("GetByID", mock.Anything, 42).
		Return(nil, fmt.Errorf("inventory item 42: %w", repositories.ErrNotFound))

	page, err := suite.service.GetPage(context.Background(), filter)

	// One missing reference must not fail the whole page.
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), UnknownTargetName, page.Rows[0].TargetName)
}

func (suite *AuditPageTestSuite) TestGetPage_DeleteEntriesSuppressLink() {
	entries := []models.AuditLogEntry{
		{ID: 5, Timestamp: time.Now(), Action: models.ActionDelete, TargetType: models.TargetTypeInventory, TargetID: 1},
		{ID: 4, Timestamp: time.Now(), Action: models.ActionCreate, TargetType: models.TargetTypeInventory, TargetID: 2},
	}

	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Action: "delete", Limit: AuditPageSize}
	suite.mockAuditRepo.On("List", mock.Anything, filter).Return(entries, nil)
	suite.mockAuditRepo.On("Count", mock.Anything, filter).Return(2, nil)
	suite.mockInventoryRepo.On("GetByID", mock.Anything, 1).Return(nil, repositories.ErrNotFound)
	suite.mockInventoryRepo.On("GetByID", mock.Anything, 2).Return(&models.InventoryItem{ID: 2, Name: "Leinwand"}, nil)

	page, err := suite.service.GetPage(context.Background(), filter)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), page.Filtered)
	assert.False(suite.T(), page.Rows[0].ShowLink, "delete entries must not link to the removed item")
	assert.True(suite.T(), page.Rows[1].ShowLink)
}

func (suite *AuditPageTestSuite) TestGetPage_ListErrorPropagates() {
	filter := models.AuditFilter{TargetType: models.TargetTypeInventory, Limit: AuditPageSize}
	suite.mockAuditRepo.On("List", mock.Anything, filter).Return(nil, errors.New("connection refused"))

	page, err := suite.service.GetPage(context.Background(), filter)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), page)
}

func TestAuditPageTestSuite(t *testing.T) {
	suite.Run(t, new(AuditPageTestSuite))
}

func TestActionLabelsAndClasses(t *testing.T) {
	assert.Equal(t, "Angelegt", ActionLabel(models.ActionCreate))
	assert.Equal(t, "Gelöscht", ActionLabel(models.ActionDelete))
	assert.Equal(t, "badge-danger", ActionClass(models.ActionDelete))
	assert.Equal(t, "badge-warning", ActionClass(models.ActionAdjustQuantity))
	// Unknown actions fall back to a neutral rendering
	assert.Equal(t, "bogus", ActionLabel(models.AuditAction("bogus")))
	assert.Equal(t, "badge-secondary", ActionClass(models.AuditAction("bogus")))
}
