package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alumnet/portal/models"
)

// AuditRepository handles audit log persistence. Entries are immutable once
// written; there are no update or delete operations.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, error)
	Count(ctx context.Context, filter models.AuditFilter) (int, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (timestamp, action, target_type, target_id, user_id, user_firstname, user_lastname, user_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		entry.Timestamp,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		entry.UserID,
		entry.UserFirstname,
		entry.UserLastname,
		entry.UserEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	entry.ID = id
	return nil
}

// List retrieves audit log entries matching the filter, most recent first,
// bounded by the filter's limit and offset.
func (r *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLogEntry, error) {
	where, args := buildAuditWhere(filter)

	query := fmt.Sprintf(`
		SELECT id, timestamp, action, target_type, target_id,
		       user_id, user_firstname, user_lastname, user_email
		FROM audit_log
		WHERE %s
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Action,
			&entry.TargetType,
			&entry.TargetID,
			&entry.UserID,
			&entry.UserFirstname,
			&entry.UserLastname,
			&entry.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}

// Count returns the total number of entries matching the filter, ignoring
// limit and offset.
func (r *auditRepository) Count(ctx context.Context, filter models.AuditFilter) (int, error) {
	where, args := buildAuditWhere(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM audit_log WHERE %s", where)

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit log entries: %w", err)
	}

	return count, nil
}

// buildAuditWhere builds the shared predicate for List and Count so both
// always apply identical filters.
func buildAuditWhere(filter models.AuditFilter) (string, []interface{}) {
	clauses := []string{"target_type = ?"}
	args := []interface{}{filter.TargetType}

	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, filter.Action)
	}

	// Bounds arrive pre-validated from the filter builder; a value that
	// still fails to parse is treated as unset.
	if filter.DateFrom != "" {
		if from, err := models.ParseDate(filter.DateFrom); err == nil {
			clauses = append(clauses, "timestamp >= ?")
			args = append(args, from)
		}
	}
	if filter.DateTo != "" {
		if to, err := models.ParseDateTime(filter.DateTo); err == nil {
			clauses = append(clauses, "timestamp <= ?")
			args = append(args, to)
		}
	}

	return strings.Join(clauses, " AND "), args
}
