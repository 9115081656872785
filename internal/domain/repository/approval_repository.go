package repository

import (
	"context"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

// ApprovalRepository puerto de persistencia de ApprovalRequest.
type ApprovalRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una PENDING del mismo (inmueble, tipo),
	// dejando la transacción utilizable para leer la existente.
	Create(ctx context.Context, r *entity.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*entity.ApprovalRequest, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error)
	GetPending(ctx context.Context, propertyID, kind string) (*entity.ApprovalRequest, error)
	// Resolve persiste la resolución solo si la solicitud sigue PENDING; si no, domain.ErrConflict.
	Resolve(ctx context.Context, r *entity.ApprovalRequest) error
	// ListByProperty historial del inmueble, más recientes primero.
	ListByProperty(ctx context.Context, propertyID string) ([]*entity.ApprovalRequest, error)
}

// ApprovalSettingsRepository puerto de persistencia de la configuración de aprobación.
type ApprovalSettingsRepository interface {
	// Get devuelve (nil, nil) si la empresa no tiene configuración persistida.
	Get(ctx context.Context, companyID string) (*entity.ApprovalSettings, error)
	Upsert(ctx context.Context, s *entity.ApprovalSettings) error
}

// WatermarkJobRepository cola de imágenes a marcar.
type WatermarkJobRepository interface {
	Enqueue(ctx context.Context, jobs []*entity.WatermarkJob) error
}
