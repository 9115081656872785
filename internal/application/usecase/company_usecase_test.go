package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUseCase_Create(t *testing.T) {
	store := memory.NewStore()
	settings := approval.NewSettingsService(store.Settings())
	uc := usecase.NewCompanyUseCase(store.Companies(), settings)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Imobiliária Sul", Document: "98.765.432/0001-10"})
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)

	s, err := store.Settings().Get(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, s, "la configuración por defecto queda persistida")
	assert.False(t, s.RequireApprovalToBeAvailable)
	assert.False(t, s.RequireApprovalToPublishOnSite)
	assert.True(t, s.ApplyWatermarkToImages)

	for _, m := range []string{entity.ModuleProperties, entity.ModuleSitePublication} {
		ok, err := store.Companies().HasActiveModule(ctx, out.ID, m)
		require.NoError(t, err)
		assert.True(t, ok, m)
	}

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", Document: "98.765.432/0001-10"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyUseCase_SetModule(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCompanyUseCase(store.Companies(), approval.NewSettingsService(store.Settings()))
	ctx := context.Background()

	err := uc.SetModule(ctx, companyA, entity.ModuleInspections, dto.SetModuleRequest{Active: true})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Imobiliária Norte", Document: "11.222.333/0001-44"})
	require.NoError(t, err)
	err = uc.SetModule(ctx, out.ID, "crm", dto.SetModuleRequest{Active: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.SetModule(ctx, out.ID, entity.ModuleInspections, dto.SetModuleRequest{Active: true}))
	ok, err := store.Companies().HasActiveModule(ctx, out.ID, entity.ModuleInspections)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompanyUseCase_GetByIDInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCompanyUseCase(store.Companies(), approval.NewSettingsService(store.Settings()))
	out, err := uc.GetByID(context.Background(), companyB)
	require.NoError(t, err)
	assert.Nil(t, out)
}
