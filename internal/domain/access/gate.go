// Package access decide, de forma pura, si una ruta de página se sirve o se redirige
// según el estado de autenticación ya resuelto.
package access

import (
	"strings"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
)

// Rutas de página conocidas por el gate.
const (
	PathLogin      = "/login"
	PathDashboard  = "/dashboard"
	PathSuperAdmin = "/super-admin"
)

// RouteClass clasificación de una ruta.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteLogin
	RouteDashboard
	RouteSuperAdmin
	// RouteBypass son API y assets: el gate no los evalúa.
	RouteBypass
)

func (c RouteClass) String() string {
	switch c {
	case RouteLogin:
		return "login"
	case RouteDashboard:
		return "dashboard"
	case RouteSuperAdmin:
		return "super-admin"
	case RouteBypass:
		return "bypass"
	default:
		return "public"
	}
}

var bypassPrefixes = []string{"/api", "/static", "/uploads", "/metrics", "/docs", "/health", "/favicon.ico"}

// AuthState es la sesión ya autenticada. nil significa petición anónima.
type AuthState struct {
	Role            string
	RestaurantID    string
	IsImpersonating bool
}

// Decision resultado del gate: Allowed o redirección a RedirectTo.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow permite la petición.
func Allow() Decision { return Decision{Allowed: true} }

// Redirect envía a target.
func Redirect(target string) Decision { return Decision{RedirectTo: target} }

// Classify asigna la clase por prefijo de ruta; la primera coincidencia gana.
// La comparación ignora mayúsculas igual que el enrutador.
func Classify(path string) RouteClass {
	if path == "" {
		path = "/"
	}
	path = strings.ToLower(path)
	for _, p := range bypassPrefixes {
		if hasSegmentPrefix(path, p) {
			return RouteBypass
		}
	}
	switch {
	case hasSegmentPrefix(path, PathLogin):
		return RouteLogin
	case hasSegmentPrefix(path, PathSuperAdmin):
		return RouteSuperAdmin
	case hasSegmentPrefix(path, PathDashboard):
		return RouteDashboard
	}
	return RoutePublic
}

// HomeFor devuelve el área propia del rol.
func HomeFor(role string) string {
	if role == entity.RoleSuperAdmin {
		return PathSuperAdmin
	}
	return PathDashboard
}

// Decide aplica las reglas en orden:
//  1. autenticado en /login -> área propia del rol
//  2. anónimo fuera de rutas públicas -> /login
//  3. no SUPER_ADMIN en /super-admin -> /dashboard
//  4. SUPER_ADMIN sin suplantar en /dashboard -> /super-admin
//  5. en otro caso se permite
func Decide(path string, auth *AuthState) Decision {
	class := Classify(path)
	if class == RouteBypass {
		return Allow()
	}

	if auth != nil && class == RouteLogin {
		return Redirect(HomeFor(auth.Role))
	}
	if auth == nil {
		if class == RouteDashboard || class == RouteSuperAdmin {
			return Redirect(PathLogin)
		}
		return Allow()
	}
	if class == RouteSuperAdmin && auth.Role != entity.RoleSuperAdmin {
		return Redirect(PathDashboard)
	}
	if class == RouteDashboard && auth.Role == entity.RoleSuperAdmin && !auth.IsImpersonating {
		return Redirect(PathSuperAdmin)
	}
	return Allow()
}

// hasSegmentPrefix: "/dashboard" coincide con "/dashboard" y "/dashboard/x", no con "/dashboards".
func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}
