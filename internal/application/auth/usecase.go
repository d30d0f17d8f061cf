package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
	"github.com/tht-textil/telas-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrDuplicate si el username ya existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*entity.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Username
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAlmacenero
	}
	user := &entity.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Nombre:        nombre,
		Role:          role,
		Estado:        "ACTIVO",
		FechaCreacion: time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica username/password y emite el JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Estado != "ACTIVO" {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
