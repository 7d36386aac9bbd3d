package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Impersonation describe una sesión en la que un SUPER_ADMIN actúa sobre un restaurante ajeno.
type Impersonation struct {
	OriginalUserID        string `json:"original_user_id"`
	OriginalUserName      string `json:"original_user_name"`
	OriginalRestaurantID  string `json:"original_restaurant_id,omitempty"`
	ImpersonatedUserID    string `json:"impersonated_user_id"`
	ImpersonatedUserName  string `json:"impersonated_user_name"`
	ImpersonatedUserEmail string `json:"impersonated_user_email"`
	RestaurantID          string `json:"restaurant_id"`
	RestaurantName        string `json:"restaurant_name"`
}

// Claims incluye los claims estándar JWT más el estado de sesión de la aplicación.
// Role y RestaurantID permiten decidir acceso sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"` // SUPER_ADMIN | RESTAURANT_OWNER | STAFF
	RestaurantID string `json:"restaurant_id,omitempty"`

	IsImpersonating bool           `json:"is_impersonating,omitempty"`
	Impersonation   *Impersonation `json:"impersonation,omitempty"`
}

// WithImpersonation devuelve una copia de los claims apuntando al restaurante suplantado.
// El receptor no se modifica.
func (c Claims) WithImpersonation(imp Impersonation) Claims {
	out := c
	out.RegisteredClaims = jwt.RegisteredClaims{}
	out.IsImpersonating = true
	out.RestaurantID = imp.RestaurantID
	cp := imp
	out.Impersonation = &cp
	return out
}

// WithoutImpersonation devuelve una copia con la identidad original restaurada.
// Si los claims no están suplantando, devuelve una copia sin cambios de sesión.
func (c Claims) WithoutImpersonation() Claims {
	out := c
	out.RegisteredClaims = jwt.RegisteredClaims{}
	if !c.IsImpersonating || c.Impersonation == nil {
		out.IsImpersonating = false
		out.Impersonation = nil
		return out
	}
	out.UserID = c.Impersonation.OriginalUserID
	out.RestaurantID = c.Impersonation.OriginalRestaurantID
	out.IsImpersonating = false
	out.Impersonation = nil
	return out
}

// Generate firma los claims con HS256; Issuer, Subject, IssuedAt y ExpiresAt se recalculan.
func Generate(secret, issuer string, expMinutes int, claims Claims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
