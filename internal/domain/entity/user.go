package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin      = "SUPER_ADMIN"
	RoleRestaurantOwner = "RESTAURANT_OWNER"
	RoleStaff           = "STAFF"
)

// User representa una cuenta. Los SUPER_ADMIN no pertenecen a ningún restaurante (RestaurantID vacío).
type User struct {
	ID           string
	RestaurantID string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si r es un rol reconocido.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleRestaurantOwner, RoleStaff:
		return true
	}
	return false
}
