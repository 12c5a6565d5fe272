package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alumnet/portal/models"
)

// UserRepository interface defines portal user database operations
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetBySubject(ctx context.Context, subject string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SetRole(ctx context.Context, id int, role models.Role, validated bool) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, entra_subject, email, firstname, lastname, role, alumni_validated, created_at`

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetBySubject retrieves a user by the SSO subject claim
func (r *userRepository) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE entra_subject = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, subject).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with subject %s: %w", subject, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (entra_subject, email, firstname, lastname, role, alumni_validated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if user.Role == "" {
		user.Role = models.RoleMember
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query,
		user.EntraSubject,
		user.Email,
		user.Firstname,
		user.Lastname,
		user.Role,
		user.AlumniValidated,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	user.ID = int(id)
	return nil
}

// Update updates a user's profile fields
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = ?, firstname = ?, lastname = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, user.Email, user.Firstname, user.Lastname, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}

	return nil
}

// SetRole updates a user's role classification and validation flag
func (r *userRepository) SetRole(ctx context.Context, id int, role models.Role, validated bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, alumni_validated = ? WHERE id = ?`,
		role, validated, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return nil
}

func scanUser(scan func(...interface{}) error) (*models.User, error) {
	var user models.User
	err := scan(
		&user.ID,
		&user.EntraSubject,
		&user.Email,
		&user.Firstname,
		&user.Lastname,
		&user.Role,
		&user.AlumniValidated,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
