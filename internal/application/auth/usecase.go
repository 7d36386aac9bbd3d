package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
	"github.com/jhoicas/MenuQR-api/internal/application/menu"
	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/internal/application/usecase"
	"github.com/jhoicas/MenuQR-api/internal/domain"
	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
	"github.com/jhoicas/MenuQR-api/internal/domain/subscription"
	"github.com/jhoicas/MenuQR-api/pkg/jwt"
	"github.com/jhoicas/MenuQR-api/pkg/slug"
)

const maxSlugAttempts = 50

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner crea restaurante y propietario en una sola transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(restaurants repository.RestaurantRepository, users repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro de restaurante, login y sesión actual.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	tx             TxRunner
	mailer         ports.Mailer
	jwtCfg         JWTConfig
	baseURL        string
	trialDays      int
	log            zerolog.Logger
	now            func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. mailer puede ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	tx TxRunner,
	mailer ports.Mailer,
	jwtCfg JWTConfig,
	baseURL string,
	trialDays int,
	log zerolog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		tx:             tx,
		mailer:         mailer,
		jwtCfg:         jwtCfg,
		baseURL:        baseURL,
		trialDays:      trialDays,
		log:            log,
		now:            time.Now,
	}
}

// RegisterRestaurant da de alta un restaurante en TRIAL junto con su propietario y devuelve la sesión.
// Devuelve ErrEmailAlreadyExists si el correo ya está registrado.
func (uc *AuthUseCase) RegisterRestaurant(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || len(in.Password) < 8 || strings.TrimSpace(in.RestaurantName) == "" {
		return nil, fmt.Errorf("%w: nombre, email y password (mín. 8) son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	restaurantSlug, err := uc.uniqueSlug(ctx, in.RestaurantName)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "USD"
	}
	restaurant := &entity.Restaurant{
		ID:                    uuid.New().String(),
		Name:                  strings.TrimSpace(in.RestaurantName),
		Slug:                  restaurantSlug,
		Phone:                 in.Phone,
		Email:                 email,
		Currency:              currency,
		ThemeColor:            "#e11d48",
		IsActive:              true,
		SubscriptionPlan:      entity.PlanTrial,
		SubscriptionStatus:    entity.SubscriptionActive,
		SubscriptionStartDate: now,
		SubscriptionEndDate:   subscription.PeriodEnd(entity.PlanTrial, now, uc.trialDays),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	owner := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: restaurant.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleRestaurantOwner,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunRegistration(ctx, func(restaurants repository.RestaurantRepository, users repository.UserRepository) error {
		if err := restaurants.Create(ctx, restaurant); err != nil {
			return err
		}
		return users.Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	uc.sendWelcome(ctx, owner, restaurant)

	token, err := uc.IssueToken(claimsFor(owner))
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Token:      token,
		User:       ToUserResponse(owner),
		Restaurant: usecase.ToRestaurantResponse(restaurant, uc.baseURL, now),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.IssueToken(claimsFor(user))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// Me describe la identidad efectiva de la sesión, incluida la suplantación activa.
func (uc *AuthUseCase) Me(claims jwt.Claims) dto.MeResponse {
	out := dto.MeResponse{
		UserID:          claims.UserID,
		Name:            claims.Name,
		Email:           claims.Email,
		Role:            claims.Role,
		RestaurantID:    claims.RestaurantID,
		IsImpersonating: claims.IsImpersonating,
	}
	if claims.IsImpersonating && claims.Impersonation != nil {
		out.Impersonation = ToImpersonationInfo(claims.Impersonation)
	}
	return out
}

// IssueToken firma los claims con la configuración vigente.
func (uc *AuthUseCase) IssueToken(claims jwt.Claims) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, claims)
}

func (uc *AuthUseCase) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "restaurante"
	}
	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := slug.WithSuffix(base, i)
		taken, err := uc.restaurantRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrSlugTaken
}

func (uc *AuthUseCase) sendWelcome(ctx context.Context, owner *entity.User, r *entity.Restaurant) {
	if uc.mailer == nil {
		return
	}
	err := uc.mailer.Send(ctx, ports.Email{
		To:      owner.Email,
		Subject: fmt.Sprintf("Bienvenido a MenuQR, %s", r.Name),
		TextBody: fmt.Sprintf(
			"Hola %s,\n\nTu restaurante %s ya tiene menú digital en %s.\n"+
				"La prueba gratuita termina el %s.\n",
			owner.Name, r.Name, menu.MenuURL(uc.baseURL, r.Slug), r.SubscriptionEndDate.Format("2006-01-02")),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("restaurant_id", r.ID).Msg("welcome email not sent")
	}
}

func claimsFor(u *entity.User) jwt.Claims {
	return jwt.Claims{
		UserID:       u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse vista pública del usuario (sin hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		RestaurantID: u.RestaurantID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// ToImpersonationInfo expone el descriptor de suplantación al cliente.
func ToImpersonationInfo(imp *jwt.Impersonation) *dto.ImpersonationInfo {
	if imp == nil {
		return nil
	}
	return &dto.ImpersonationInfo{
		OriginalUserID:        imp.OriginalUserID,
		OriginalUserName:      imp.OriginalUserName,
		ImpersonatedUserID:    imp.ImpersonatedUserID,
		ImpersonatedUserName:  imp.ImpersonatedUserName,
		ImpersonatedUserEmail: imp.ImpersonatedUserEmail,
		RestaurantID:          imp.RestaurantID,
		RestaurantName:        imp.RestaurantName,
	}
}
