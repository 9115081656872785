package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByDocument(ctx context.Context, document string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
	// SetModule activa o desactiva un módulo; expiresAt nil = sin vencimiento.
	SetModule(ctx context.Context, companyID, moduleName string, active bool, expiresAt *time.Time) error
}
