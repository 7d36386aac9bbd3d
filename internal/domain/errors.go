package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrSlugTaken          = errors.New("el slug ya está en uso")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Suscripción / suplantación
	ErrRestaurantNotFound  = fmt.Errorf("restaurante no encontrado: %w", ErrNotFound)
	ErrOwnerNotFound       = fmt.Errorf("el restaurante no tiene propietario: %w", ErrNotFound)
	ErrSubscriptionExpired = errors.New("la suscripción del restaurante está vencida")
	ErrRestaurantInactive  = errors.New("el restaurante está inactivo")
)
