package services

import (
	"github.com/sirupsen/logrus"

	"github.com/alumnet/portal/repositories"
)

// Services holds all service instances
type Services struct {
	Users      UserService
	Inventory  InventoryService
	Audit      AuditService
	Validation ValidationService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, log *logrus.Logger) *Services {
	return &Services{
		Users:      NewUserService(repos.Users),
		Inventory:  NewInventoryService(repos.Inventory, repos.Location, repos.Category, repos.Audit, log),
		Audit:      NewAuditService(repos.Audit, repos.Inventory, log),
		Validation: NewValidationService(repos.Validation, repos.Users),
	}
}
