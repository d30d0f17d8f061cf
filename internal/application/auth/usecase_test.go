package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tht-textil/telas-api/internal/application/dto"
	"github.com/tht-textil/telas-api/internal/domain"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/pkg/jwt"
)

type userRepoMem struct {
	users  map[string]*entity.User
	nextID int64
}

func newUserRepoMem() *userRepoMem {
	return &userRepoMem{users: make(map[string]*entity.User), nextID: 1}
}

func (r *userRepoMem) Create(u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	copia := *u
	r.users[u.Username] = &copia
	return nil
}

func (r *userRepoMem) GetByID(id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *userRepoMem) GetByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

var cfg = JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "telas-api"}

func TestRegisterYLogin(t *testing.T) {
	uc := NewUseCase(newUserRepoMem(), cfg)

	user, err := uc.Register(dto.RegisterRequest{
		Username: "jperez",
		Email:    "jperez@example.com",
		Password: "clave123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", user.PasswordHash)

	resp, err := uc.Login(dto.LoginRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "jperez", resp.Username)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	userID, username, role, err := jwt.Parse(cfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "jperez", username)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestRegisterDuplicado(t *testing.T) {
	uc := NewUseCase(newUserRepoMem(), cfg)
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "x"})
	require.NoError(t, err)
	_, err = uc.Register(dto.RegisterRequest{Username: "jperez", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterRolePorDefecto(t *testing.T) {
	uc := NewUseCase(newUserRepoMem(), cfg)
	user, err := uc.Register(dto.RegisterRequest{Username: "ana", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAlmacenero, user.Role)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	uc := NewUseCase(newUserRepoMem(), cfg)
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "jperez", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(dto.LoginRequest{Username: "noexiste", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	repo := newUserRepoMem()
	uc := NewUseCase(repo, cfg)
	_, err := uc.Register(dto.RegisterRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)
	repo.users["jperez"].Estado = "INACTIVO"

	_, err = uc.Login(dto.LoginRequest{Username: "jperez", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
