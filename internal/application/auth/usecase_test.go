package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/auth"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Inmobiliaria-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	secret    = "test-secret"
	companyID = "11111111-1111-1111-1111-111111111111"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{
		ID: companyID, Name: "Imobiliária Central", Document: "1", Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	uc := auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
	return uc, store
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@central.com.br", Password: "s3cret-pass", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCorretor, user.Role)
	assert.Equal(t, "ana@central.com.br", user.Name)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@central.com.br", Password: "otra-pass", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@central.com.br", Password: "s3cret-pass"})
	require.NoError(t, err)
	p, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Principal{UserID: user.ID, CompanyID: companyID, Role: entity.RoleCorretor}, p)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "gestor@central.com.br", Password: "s3cret-pass", CompanyID: companyID, Role: entity.RoleGestor})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "gestor@central.com.br", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@central.com.br", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "x@y.com", Password: "s3cret-pass", CompanyID: "22222222-2222-2222-2222-222222222222",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
