package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"github.com/jhoicas/marketplace-api/pkg/jwt"
)

// UseCase autentica usuarios principales y sub-usuarios y emite el JWT con la
// identidad de tenant embebida.
type UseCase struct {
	users      repository.UserRepository
	subUsers   repository.SubUserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(users repository.UserRepository, subUsers repository.SubUserRepository, jwtSecret, jwtIssuer string, expMinutes int) *UseCase {
	return &UseCase{
		users:      users,
		subUsers:   subUsers,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
	}
}

// Login autentica un usuario principal por email y contraseña.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validateLogin(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if u.Status != "active" {
		return nil, domain.ErrAccessDenied
	}

	token, err := jwt.Generate(uc.jwtSecret, uc.jwtIssuer, uc.expMinutes, jwt.Identity{
		UserID:   u.ID,
		Role:     u.Role,
		VendorID: u.VendorID,
		StoreID:  u.StoreID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   u.ID,
		Role:     u.Role,
		VendorID: u.VendorID,
		StoreID:  u.StoreID,
	}, nil
}

// LoginSubUser autentica un sub-usuario. Solo los aprobados pueden entrar:
// pending y rejected se rechazan aunque la contraseña sea correcta.
func (uc *UseCase) LoginSubUser(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validateLogin(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	su, err := uc.subUsers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if su == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(su.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if su.Status != entity.SubUserStatusApproved {
		return nil, domain.ErrAccessDenied
	}

	// El rol del sub-usuario se deriva de su tenant.
	role := domain.RoleStore
	if su.VendorID != "" {
		role = domain.RoleVendor
	}
	token, err := jwt.Generate(uc.jwtSecret, uc.jwtIssuer, uc.expMinutes, jwt.Identity{
		UserID:   su.ID,
		Role:     role,
		VendorID: su.VendorID,
		StoreID:  su.StoreID,
		SubUser:  true,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		UserID:   su.ID,
		Role:     role,
		VendorID: su.VendorID,
		StoreID:  su.StoreID,
		SubUser:  true,
	}, nil
}

func validateLogin(in dto.LoginRequest) error {
	var missing []string
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}
