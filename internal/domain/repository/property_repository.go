package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

// Campos de orden para las colas de aprobación.
const (
	SortByCreatedAt              = "created_at"
	SortByUpdatedAt              = "updated_at"
	SortByRequestedAt            = "requested_at"
	SortByPublicationRequestedAt = "publication_requested_at"
)

// PendingQuery filtro y orden de ListPending.
type PendingQuery struct {
	CompanyID string
	Kind      string // entity.ApprovalKind*
	SortBy    string // ver SortBy*
	Desc      bool
}

// PropertyRepository define el puerto de persistencia para Property (DIP).
// Las lecturas devuelven (nil, nil) si el inmueble no existe.
type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	// GetForUpdate lee y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Property, error)
	// Update persiste atributos descriptivos e imágenes; nunca estado ni flags.
	Update(ctx context.Context, p *entity.Property) error
	// UpdateState actualización condicional: solo escribe `to` si la fila sigue en `from`.
	// Devuelve domain.ErrConflict si la fila cambió.
	UpdateState(ctx context.Context, id string, from, to entity.PropertyState, updatedAt time.Time) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Property, error)
	ListPending(ctx context.Context, q PendingQuery) ([]*entity.PendingProperty, error)
	ListPendingByRequester(ctx context.Context, companyID, userID string) ([]*entity.PendingProperty, error)
	// ListPublished inmuebles expuestos en el sitio público (activos, disponibles y publicados).
	ListPublished(ctx context.Context, companyID string) ([]*entity.Property, error)
	CountPublished(ctx context.Context, companyID string) (int, error)
}
