package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// Motivos de bloqueo que agrega el plan contratado.
const (
	ReasonPlanWithoutSitePublication = "plan does not include site publication"
	reasonListingLimitFmt            = "public listing limit reached (%d)"
)

// ModuleService verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
type ModuleService struct {
	companyRepo  repository.CompanyRepository
	propertyRepo repository.PropertyRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository, propertyRepo repository.PropertyRepository) *ModuleService {
	return &ModuleService{companyRepo: companyRepo, propertyRepo: propertyRepo}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	return s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
}

// SitePublicationCheck predicado de publicación del plan: módulo site_publication activo
// y cupo de publicaciones disponible. El conteo se hace fuera de la transacción del
// inmueble, así que dos publicaciones simultáneas pueden exceder el cupo en uno.
func (s *ModuleService) SitePublicationCheck() approval.PublishCheck {
	return func(ctx context.Context, p *entity.Property) ([]string, error) {
		var reasons []string
		ok, err := s.HasActiveModule(ctx, p.CompanyID, entity.ModuleSitePublication)
		if err != nil {
			return nil, err
		}
		if !ok {
			reasons = append(reasons, ReasonPlanWithoutSitePublication)
		}
		company, err := s.companyRepo.GetByID(ctx, p.CompanyID)
		if err != nil {
			return nil, err
		}
		if company != nil && company.PublicListingLimit > 0 {
			n, err := s.propertyRepo.CountPublished(ctx, p.CompanyID)
			if err != nil {
				return nil, err
			}
			if n >= company.PublicListingLimit {
				reasons = append(reasons, fmt.Sprintf(reasonListingLimitFmt, company.PublicListingLimit))
			}
		}
		return reasons, nil
	}
}
