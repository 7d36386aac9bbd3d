package dto

import "time"

// RegisterRequest alta de un restaurante con su propietario.
type RegisterRequest struct {
	RestaurantName string `json:"restaurant_name" validate:"required,max=160"`
	Name           string `json:"name" validate:"required,max=160"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Phone          string `json:"phone" validate:"omitempty,max=40"`
	Currency       string `json:"currency" validate:"omitempty,len=3"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterResponse token, usuario y restaurante recién creados.
type RegisterResponse struct {
	Token      string             `json:"token"`
	User       UserResponse       `json:"user"`
	Restaurant RestaurantResponse `json:"restaurant"`
}

// ImpersonationInfo datos de la suplantación activa expuestos al cliente.
type ImpersonationInfo struct {
	OriginalUserID        string `json:"original_user_id"`
	OriginalUserName      string `json:"original_user_name"`
	ImpersonatedUserID    string `json:"impersonated_user_id"`
	ImpersonatedUserName  string `json:"impersonated_user_name"`
	ImpersonatedUserEmail string `json:"impersonated_user_email"`
	RestaurantID          string `json:"restaurant_id"`
	RestaurantName        string `json:"restaurant_name"`
}

// MeResponse identidad efectiva de la sesión.
type MeResponse struct {
	UserID          string             `json:"user_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Role            string             `json:"role"`
	RestaurantID    string             `json:"restaurant_id,omitempty"`
	IsImpersonating bool               `json:"is_impersonating"`
	Impersonation   *ImpersonationInfo `json:"impersonation,omitempty"`
}

// ImpersonationResponse resultado de iniciar o terminar una suplantación.
type ImpersonationResponse struct {
	Token         string             `json:"token"`
	Impersonation *ImpersonationInfo `json:"impersonation,omitempty"`
}
