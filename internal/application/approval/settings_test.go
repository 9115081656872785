package approval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/infrastructure/memory"
)

func TestSettings_Defaults(t *testing.T) {
	svc := approval.NewSettingsService(memory.NewStore().Settings())

	s, err := svc.Get(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, companyID, s.CompanyID)
	assert.False(t, s.RequireApprovalToBeAvailable)
	assert.False(t, s.RequireApprovalToPublishOnSite)
	assert.True(t, s.ApplyWatermarkToImages)

	_, err = svc.Get(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSettings_UpdateMezcla(t *testing.T) {
	svc := approval.NewSettingsService(memory.NewStore().Settings())
	ctx := context.Background()
	yes, no := true, false

	s, err := svc.Update(ctx, companyID, approval.SettingsPatch{RequireApprovalToPublishOnSite: &yes})
	require.NoError(t, err)
	assert.True(t, s.RequireApprovalToPublishOnSite)
	assert.False(t, s.RequireApprovalToBeAvailable)
	assert.True(t, s.ApplyWatermarkToImages)
	assert.False(t, s.UpdatedAt.IsZero())

	s, err = svc.Update(ctx, companyID, approval.SettingsPatch{ApplyWatermarkToImages: &no})
	require.NoError(t, err)
	assert.True(t, s.RequireApprovalToPublishOnSite, "los campos no enviados se conservan")
	assert.False(t, s.ApplyWatermarkToImages)

	stored, err := svc.Get(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, s, stored)
}

func TestSettings_EnsureDefaults(t *testing.T) {
	store := memory.NewStore()
	svc := approval.NewSettingsService(store.Settings())
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx, companyID))
	stored, err := store.Settings().Get(ctx, companyID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ApplyWatermarkToImages)
}
