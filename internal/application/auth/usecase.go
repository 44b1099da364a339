package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
	"github.com/jhoicas/Escaner-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login por nombre + PIN contra el
// almacén de credenciales, con alta perezosa del usuario en la base.
type AuthUseCase struct {
	creds     CredentialStore
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	adminName string
}

// NewAuthUseCase construye el caso de uso de auth. adminName es la única
// fuente de verdad de la identidad del administrador.
func NewAuthUseCase(creds CredentialStore, userRepo repository.UserRepository, jwtCfg JWTConfig, adminName string) *AuthUseCase {
	return &AuthUseCase{creds: creds, userRepo: userRepo, jwtCfg: jwtCfg, adminName: adminName}
}

// Login verifica nombre/PIN contra el almacén de credenciales, crea el usuario
// en la base si es su primer ingreso (solo para nombres presentes en el
// almacén), genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(in.Name)
	pin := strings.TrimSpace(in.PIN)
	if name == "" || pin == "" {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.creds.Authenticate(name, pin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Primer ingreso: alta perezosa. La credencial ya fue verificada.
		user = &entity.User{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	role := uc.RoleFor(user.Name)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Role:      role,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// RoleFor deriva el rol del nombre: el nombre reservado del administrador es
// admin, el resto operario.
func (uc *AuthUseCase) RoleFor(name string) string {
	if name == uc.adminName {
		return entity.RoleAdmin
	}
	return entity.RoleOperario
}
