package services

import (
	"context"
	"fmt"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
)

// ValidationService interface defines alumni validation business logic
type ValidationService interface {
	ListPending(ctx context.Context) ([]models.AlumniValidation, error)
	Request(ctx context.Context, userID int, note string) (*models.AlumniValidation, error)
	Approve(ctx context.Context, id int, decidedBy, note string) error
	Reject(ctx context.Context, id int, decidedBy, note string) error
}

// validationService implements ValidationService interface
type validationService struct {
	validationRepo repositories.ValidationRepository
	userRepo       repositories.UserRepository
}

// NewValidationService creates a new validation service
func NewValidationService(validationRepo repositories.ValidationRepository, userRepo repositories.UserRepository) ValidationService {
	return &validationService{
		validationRepo: validationRepo,
		userRepo:       userRepo,
	}
}

// ListPending retrieves all open validation requests
func (s *validationService) ListPending(ctx context.Context) ([]models.AlumniValidation, error) {
	return s.validationRepo.ListPending(ctx)
}

// Request creates a validation request for the given user
func (s *validationService) Request(ctx context.Context, userID int, note string) (*models.AlumniValidation, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.AlumniValidated {
		return nil, fmt.Errorf("alumni status is already validated")
	}

	pending, err := s.validationRepo.HasPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("a validation request is already pending")
	}

	validation := &models.AlumniValidation{
		UserID: userID,
		Note:   note,
	}
	if err := s.validationRepo.Create(ctx, validation); err != nil {
		return nil, fmt.Errorf("failed to create validation request: %w", err)
	}

	return validation, nil
}

// Approve approves a pending request and promotes the requester to a
// validated alumni.
func (s *validationService) Approve(ctx context.Context, id int, decidedBy, note string) error {
	validation, err := s.validationRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("validation request not found: %w", err)
	}

	if err := s.validationRepo.Decide(ctx, id, models.ValidationApproved, decidedBy, note); err != nil {
		return fmt.Errorf("failed to approve validation: %w", err)
	}

	if err := s.userRepo.SetRole(ctx, validation.UserID, models.RoleAlumni, true); err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}

	return nil
}

// Reject rejects a pending request
func (s *validationService) Reject(ctx context.Context, id int, decidedBy, note string) error {
	if _, err := s.validationRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("validation request not found: %w", err)
	}

	if err := s.validationRepo.Decide(ctx, id, models.ValidationRejected, decidedBy, note); err != nil {
		return fmt.Errorf("failed to reject validation: %w", err)
	}

	return nil
}
