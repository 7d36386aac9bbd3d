// seed_admin crea o actualiza la cuenta SUPER_ADMIN de la plataforma.
//
// Uso: SUPER_ADMIN_EMAIL=... SUPER_ADMIN_PASSWORD=... go run ./cmd/seed_admin
//
// Si el correo ya existe, se actualizan nombre, contraseña y rol.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/infrastructure/postgres"
	"github.com/jhoicas/MenuQR-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}
	email := strings.ToLower(strings.TrimSpace(cfg.SuperAdmin.Email))
	if email == "" || len(cfg.SuperAdmin.Password) < 8 {
		fail("configuración", fmt.Errorf("SUPER_ADMIN_EMAIL y SUPER_ADMIN_PASSWORD (mínimo 8 caracteres) son obligatorios"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de contraseña", err)
	}

	users := postgres.NewUserRepository(pool)
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		fail("buscar usuario", err)
	}

	now := time.Now().UTC()
	if existing != nil {
		if existing.RestaurantID != "" {
			fail("actualizar usuario", fmt.Errorf("%s pertenece a un restaurante y no puede ser SUPER_ADMIN", email))
		}
		existing.Name = cfg.SuperAdmin.Name
		existing.PasswordHash = string(hash)
		existing.Role = entity.RoleSuperAdmin
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			fail("actualizar usuario", err)
		}
		fmt.Printf("SUPER_ADMIN actualizado: %s (%s)\n", email, existing.ID)
		return
	}

	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         cfg.SuperAdmin.Name,
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		fail("crear usuario", err)
	}
	fmt.Printf("SUPER_ADMIN creado: %s (%s)\n", email, u.ID)
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
