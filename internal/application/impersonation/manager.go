// Package impersonation permite a un SUPER_ADMIN actuar temporalmente como el propietario de un restaurante.
// No persiste nada: la suplantación vive solo en los claims de la sesión.
package impersonation

import (
	"context"

	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	"github.com/jhoicas/MenuQR-api/pkg/jwt"
)

// Descriptor datos de la suplantación que se fusionan en los claims.
type Descriptor = jwt.Impersonation

// Manager inicia y termina suplantaciones.
type Manager struct {
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
}

// NewManager construye el gestor.
func NewManager(restaurants repository.RestaurantRepository, users repository.UserRepository) *Manager {
	return &Manager{restaurants: restaurants, users: users}
}

// Begin valida al llamador, busca restaurante y propietario y devuelve el descriptor junto con
// los nuevos claims. Ante cualquier error los claims del llamador no cambian.
func (m *Manager) Begin(ctx context.Context, caller jwt.Claims, restaurantID string) (*Descriptor, jwt.Claims, error) {
	if caller.Role != entity.RoleSuperAdmin {
		return nil, caller, domain.ErrForbidden
	}
	if restaurantID == "" {
		return nil, caller, domain.ErrInvalidInput
	}

	r, err := m.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, caller, err
	}
	if r == nil {
		return nil, caller, domain.ErrRestaurantNotFound
	}
	owner, err := m.users.FindOwnerByRestaurant(ctx, r.ID)
	if err != nil {
		return nil, caller, err
	}
	if owner == nil {
		return nil, caller, domain.ErrOwnerNotFound
	}

	// Cambiar de restaurante sin terminar antes conserva la identidad original.
	base := caller
	if caller.IsImpersonating {
		base = caller.WithoutImpersonation()
	}

	desc := &Descriptor{
		OriginalUserID:        base.UserID,
		OriginalUserName:      base.Name,
		OriginalRestaurantID:  base.RestaurantID,
		ImpersonatedUserID:    owner.ID,
		ImpersonatedUserName:  owner.Name,
		ImpersonatedUserEmail: owner.Email,
		RestaurantID:          r.ID,
		RestaurantName:        r.Name,
	}
	return desc, base.WithImpersonation(*desc), nil
}

// End quita los campos de suplantación. Sin suplantación activa devuelve los claims tal cual.
func (m *Manager) End(caller jwt.Claims) jwt.Claims {
	if !caller.IsImpersonating {
		return caller
	}
	return caller.WithoutImpersonation()
}
