package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alumnet/portal/models"
)

// ValidationRepository interface defines alumni validation database operations
type ValidationRepository interface {
	ListPending(ctx context.Context) ([]models.AlumniValidation, error)
	GetByID(ctx context.Context, id int) (*models.AlumniValidation, error)
	Create(ctx context.Context, validation *models.AlumniValidation) error
	Decide(ctx context.Context, id int, status models.ValidationStatus, decidedBy, note string) error
	HasPending(ctx context.Context, userID int) (bool, error)
}

// validationRepository implements ValidationRepository interface
type validationRepository struct {
	db *sql.DB
}

// NewValidationRepository creates a new validation repository
func NewValidationRepository(db *sql.DB) ValidationRepository {
	return &validationRepository{db: db}
}

// ListPending retrieves all pending validation requests with requester identity
func (r *validationRepository) ListPending(ctx context.Context) ([]models.AlumniValidation, error) {
	query := `
		SELECT v.id, v.user_id, v.status, v.note, v.decided_by, v.decided_at, v.created_at,
		       u.email, u.firstname, u.lastname
		FROM alumni_validations v
		JOIN users u ON u.id = v.user_id
		WHERE v.status = ?
		ORDER BY v.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, models.ValidationPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending validations: %w", err)
	}
	defer rows.Close()

	var validations []models.AlumniValidation
	for rows.Next() {
		var v models.AlumniValidation
		var decidedAt sql.NullTime

		err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.Status,
			&v.Note,
			&v.DecidedBy,
			&decidedAt,
			&v.CreatedAt,
			&v.UserEmail,
			&v.UserFirstname,
			&v.UserLastname,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan validation: %w", err)
		}

		if decidedAt.Valid {
			v.DecidedAt = &decidedAt.Time
		}

		validations = append(validations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating validations: %w", err)
	}

	return validations, nil
}

// GetByID retrieves a validation request by ID
func (r *validationRepository) GetByID(ctx context.Context, id int) (*models.AlumniValidation, error) {
	query := `
		SELECT id, user_id, status, note, decided_by, decided_at, created_at
		FROM alumni_validations
		WHERE id = ?
	`

	var v models.AlumniValidation
	var decidedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.UserID,
		&v.Status,
		&v.Note,
		&v.DecidedBy,
		&decidedAt,
		&v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("validation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get validation: %w", err)
	}

	if decidedAt.Valid {
		v.DecidedAt = &decidedAt.Time
	}

	return &v, nil
}

// Create creates a new pending validation request
func (r *validationRepository) Create(ctx context.Context, validation *models.AlumniValidation) error {
	query := `
		INSERT INTO alumni_validations (user_id, status, note, created_at)
		VALUES (?, ?, ?, ?)
	`

	if validation.Status == "" {
		validation.Status = models.ValidationPending
	}
	if validation.CreatedAt.IsZero() {
		validation.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		validation.UserID,
		validation.Status,
		validation.Note,
		validation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create validation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	validation.ID = int(id)
	return nil
}

// Decide records a decision on a pending validation request
func (r *validationRepository) Decide(ctx context.Context, id int, status models.ValidationStatus, decidedBy, note string) error {
	query := `
		UPDATE alumni_validations
		SET status = ?, decided_by = ?, note = ?, decided_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, decidedBy, note, time.Now().UTC(), id, models.ValidationPending)
	if err != nil {
		return fmt.Errorf("failed to decide validation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("pending validation %d: %w", id, ErrNotFound)
	}

	return nil
}

// HasPending reports whether the user already has a pending request
func (r *validationRepository) HasPending(ctx context.Context, userID int) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alumni_validations WHERE user_id = ? AND status = ?`,
		userID, models.ValidationPending,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check pending validations: %w", err)
	}
	return count > 0, nil
}
