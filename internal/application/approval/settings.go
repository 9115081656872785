package approval

import (
	"context"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// SettingsPatch actualización parcial: solo se aplican los campos no nil.
type SettingsPatch struct {
	RequireApprovalToBeAvailable   *bool
	RequireApprovalToPublishOnSite *bool
	ApplyWatermarkToImages         *bool
}

// SettingsService almacén de configuración de aprobación por empresa.
// Es configuración, no lógica de negocio: no valida más allá de los tipos.
type SettingsService struct {
	repo repository.ApprovalSettingsRepository
	now  func() time.Time
}

// NewSettingsService construye el servicio.
func NewSettingsService(repo repository.ApprovalSettingsRepository) *SettingsService {
	return &SettingsService{repo: repo, now: time.Now}
}

// Get devuelve la configuración de la empresa o los valores por defecto si no hay nada persistido.
func (s *SettingsService) Get(ctx context.Context, companyID string) (entity.ApprovalSettings, error) {
	if companyID == "" {
		return entity.ApprovalSettings{}, domain.ErrInvalidInput
	}
	stored, err := s.repo.Get(ctx, companyID)
	if err != nil {
		return entity.ApprovalSettings{}, err
	}
	if stored == nil {
		return entity.DefaultApprovalSettings(companyID), nil
	}
	return *stored, nil
}

// Update mezcla solo los campos enviados y persiste el resultado.
func (s *SettingsService) Update(ctx context.Context, companyID string, patch SettingsPatch) (entity.ApprovalSettings, error) {
	current, err := s.Get(ctx, companyID)
	if err != nil {
		return entity.ApprovalSettings{}, err
	}
	if patch.RequireApprovalToBeAvailable != nil {
		current.RequireApprovalToBeAvailable = *patch.RequireApprovalToBeAvailable
	}
	if patch.RequireApprovalToPublishOnSite != nil {
		current.RequireApprovalToPublishOnSite = *patch.RequireApprovalToPublishOnSite
	}
	if patch.ApplyWatermarkToImages != nil {
		current.ApplyWatermarkToImages = *patch.ApplyWatermarkToImages
	}
	current.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, &current); err != nil {
		return entity.ApprovalSettings{}, err
	}
	return current, nil
}

// EnsureDefaults persiste los valores por defecto al crear la empresa.
func (s *SettingsService) EnsureDefaults(ctx context.Context, companyID string) error {
	defaults := entity.DefaultApprovalSettings(companyID)
	defaults.UpdatedAt = s.now()
	return s.repo.Upsert(ctx, &defaults)
}
