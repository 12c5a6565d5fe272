package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/repositories"
)

// UserService interface defines portal user business logic
type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	// SyncFromClaims provisions a user on first SSO login and refreshes
	// the profile fields on subsequent logins.
	SyncFromClaims(ctx context.Context, subject, email, firstname, lastname string) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	return s.userRepo.GetByID(ctx, id)
}

// SyncFromClaims looks the user up by SSO subject, creating the account on
// first login and keeping email/name in sync afterwards.
func (s *userService) SyncFromClaims(ctx context.Context, subject, email, firstname, lastname string) (*models.User, error) {
	if subject == "" {
		return nil, fmt.Errorf("subject claim is required")
	}

	user, err := s.userRepo.GetBySubject(ctx, subject)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		user = &models.User{
			EntraSubject: subject,
			Email:        email,
			Firstname:    firstname,
			Lastname:     lastname,
			Role:         models.RoleMember,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		return user, nil
	}

	if user.Email != email || user.Firstname != firstname || user.Lastname != lastname {
		user.Email = email
		user.Firstname = firstname
		user.Lastname = lastname
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}
	}

	return user, nil
}
