package approval

import (
	"context"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error no se persiste nada (ninguna transición queda a medias).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		properties repository.PropertyRepository,
		approvals repository.ApprovalRepository,
	) error) error
}

// Watermarker servicio externo de marca de agua. Es best-effort: un error se registra
// pero nunca revierte la aprobación.
type Watermarker interface {
	Watermark(ctx context.Context, p *entity.Property, requestID string) error
}

// PublishCheck predicado adicional de publicación inyectado por el llamador
// (p. ej. límites del plan). Devuelve motivos de bloqueo; vacío = permitido.
type PublishCheck func(ctx context.Context, p *entity.Property) ([]string, error)
