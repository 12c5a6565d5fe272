package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
)

// AuditPageSize is the fixed window of the audit trail page.
const AuditPageSize = 50

// UnknownTargetName is shown when the referenced record no longer exists.
const UnknownTargetName = "Unbekannt"

// datePattern is the only date format accepted from the query string.
// Values that do not match are dropped, not reported.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AuditRow is one rendered line of the audit trail.
type AuditRow struct {
	Entry       models.AuditLogEntry
	Time        string // local display format, date + time
	ActionLabel string
	ActionClass string
	TargetName  string
	ActorName   string
	ActorEmail  string
	// ShowLink is false for delete entries: the referenced item is gone,
	// so there is nothing to link to.
	ShowLink bool
}

// AuditPage is the assembled view model for the audit trail page.
type AuditPage struct {
	Rows     []AuditRow
	Total    int
	Shown    int
	Filtered bool
}

// AuditService interface defines the audit trail read pipeline. The write
// side lives in the inventory service, next to the mutations it records.
type AuditService interface {
	ParseFilters(params url.Values) models.AuditFilter
	GetPage(ctx context.Context, filter models.AuditFilter) (*AuditPage, error)
}

// auditService implements AuditService interface
type auditService struct {
	auditRepo     repositories.AuditRepository
	inventoryRepo repositories.InventoryRepository
	log           *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repositories.AuditRepository, inventoryRepo repositories.InventoryRepository, log *logrus.Logger) AuditService {
	return &auditService{
		auditRepo:     auditRepo,
		inventoryRepo: inventoryRepo,
		log:           log,
	}
}

// ParseFilters turns raw query-string parameters into a validated filter set.
// The action value is passed through unfiltered; unknown values match zero
// rows in the store. Dates are accepted only in strict YYYY-MM-DD form and
// silently dropped otherwise. date_to is extended to the end of the day so
// the range is inclusive.
func (s *auditService) ParseFilters(params url.Values) models.AuditFilter {
	filter := models.AuditFilter{
		TargetType: models.TargetTypeInventory,
		Limit:      AuditPageSize,
		Offset:     0,
	}

	filter.Action = params.Get("action")

	if from := params.Get("date_from"); datePattern.MatchString(from) {
		filter.DateFrom = from
	}
	if to := params.Get("date_to"); datePattern.MatchString(to) {
		filter.DateTo = to + " 23:59:59"
	}

	return filter
}

// GetPage runs the read pipeline: fetch + count, then resolve every entry's
// target to a display name and build the view rows.
func (s *auditService) GetPage(ctx context.Context, filter models.AuditFilter) (*AuditPage, error) {
	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch audit log: %w", err)
	}

	total, err := s.auditRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit log: %w", err)
	}

	page := &AuditPage{
		Rows:     make([]AuditRow, 0, len(entries)),
		Total:    total,
		Shown:    len(entries),
		Filtered: filter.Filtered(),
	}

	for _, entry := range entries {
		page.Rows = append(page.Rows, AuditRow{
			Entry:       entry,
			Time:        models.FormatDateTime(entry.Timestamp),
			ActionLabel: ActionLabel(entry.Action),
			ActionClass: ActionClass(entry.Action),
			TargetName:  s.resolveTargetName(ctx, entry.TargetType, entry.TargetID),
			ActorName:   entry.ActorName(),
			ActorEmail:  entry.UserEmail,
			ShowLink:    entry.Action != models.ActionDelete,
		})
	}

	return page, nil
}

// resolveTargetName maps a (target_type, target_id) pair to a display name
// against the current state of the referenced table. The referenced record
// may have been deleted after the entry was written; resolution then falls
// back to a placeholder instead of failing the page.
func (s *auditService) resolveTargetName(ctx context.Context, targetType string, targetID int) string {
	switch targetType {
	case models.TargetTypeInventory:
		item, err := s.inventoryRepo.GetByID(ctx, targetID)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				s.log.WithError(err).WithField("target_id", targetID).Warn("audit target resolution failed")
			}
			return UnknownTargetName
		}
		return item.Name
	default:
		return UnknownTargetName + " (" + targetType + " #" + strconv.Itoa(targetID) + ")"
	}
}

// ActionLabel returns the display label for an audit action.
func ActionLabel(action models.AuditAction) string {
	switch action {
	case models.ActionCreate:
		return "Angelegt"
	case models.ActionUpdate:
		return "Bearbeitet"
	case models.ActionDelete:
		return "Gelöscht"
	case models.ActionAdjustQuantity:
		return "Menge geändert"
	}
	return string(action)
}

// ActionClass returns the badge CSS class for an audit action.
func ActionClass(action models.AuditAction) string {
	switch action {
	case models.ActionCreate:
		return "badge-success"
	case models.ActionUpdate:
		return "badge-info"
	case models.ActionDelete:
		return "badge-danger"
	case models.ActionAdjustQuantity:
		return "badge-warning"
	}
	return "badge-secondary"
}
