package identity

import (
	"context"

	"github.com/sistemaventa/backend/internal/domain/identity"
	"github.com/sistemaventa/backend/internal/domain/shared"
)

// RoleService exposes the read-only role reference data
type RoleService struct {
	roles shared.Repository[identity.Role]
}

// NewRoleService creates a new RoleService
func NewRoleService(roles shared.Repository[identity.Role]) *RoleService {
	return &RoleService{roles: roles}
}

// List returns every role
func (s *RoleService) List(ctx context.Context) ([]identity.Role, error) {
	return s.roles.Query(ctx, nil)
}
