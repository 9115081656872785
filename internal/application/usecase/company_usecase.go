package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// Módulos activados al dar de alta una empresa.
var defaultModules = []string{entity.ModuleProperties, entity.ModuleSitePublication}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	settings *approval.SettingsService
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, settings *approval.SettingsService) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, settings: settings}
}

// Create crea una nueva empresa con configuración de aprobación por defecto y el plan base.
// Devuelve domain.ErrDuplicate si el documento ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByDocument(ctx, in.Document)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Document:           in.Document,
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		Status:             "active",
		PublicListingLimit: in.PublicListingLimit,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	if err := uc.settings.EnsureDefaults(ctx, company.ID); err != nil {
		return nil, err
	}
	for _, m := range defaultModules {
		if err := uc.repo.SetModule(ctx, company.ID, m, true, nil); err != nil {
			return nil, err
		}
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// SetModule activa o desactiva un módulo del plan de la empresa.
func (uc *CompanyUseCase) SetModule(ctx context.Context, companyID, module string, in dto.SetModuleRequest) error {
	switch module {
	case entity.ModuleProperties, entity.ModuleSitePublication, entity.ModuleInspections, entity.ModuleFinancialAudit:
	default:
		return domain.ErrInvalidInput
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetModule(ctx, companyID, module, in.Active, in.ExpiresAt)
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Document:           c.Document,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Status:             c.Status,
		PublicListingLimit: c.PublicListingLimit,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
