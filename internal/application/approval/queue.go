package approval

import (
	"context"
	"strings"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// Decisiones de resolución de una solicitud.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Campos de orden permitidos por cola. La cola de publicación admite además
// publication_requested_at (alias de requested_at para esa cola).
var sortFields = map[string][]string{
	entity.ApprovalKindAvailability: {
		repository.SortByCreatedAt, repository.SortByUpdatedAt, repository.SortByRequestedAt,
	},
	entity.ApprovalKindPublication: {
		repository.SortByCreatedAt, repository.SortByUpdatedAt, repository.SortByRequestedAt,
		repository.SortByPublicationRequestedAt,
	},
}

// MyPending inmuebles del usuario que esperan aprobación, por tipo.
type MyPending struct {
	PendingAvailability []*entity.PendingProperty
	PendingPublication  []*entity.PendingProperty
}

// ResolveOptions opciones comunes de aprobación/rechazo.
type ResolveOptions struct {
	CompanyID      string
	UserID         string
	Reason         string // obligatorio al rechazar
	ApplyWatermark *bool  // solo al aprobar
	Strict         bool
}

// QueueManager administra las colas de solicitudes pendientes.
type QueueManager struct {
	workflow   *Workflow
	properties repository.PropertyRepository
}

// NewQueueManager construye el administrador de colas.
func NewQueueManager(workflow *Workflow, properties repository.PropertyRepository) *QueueManager {
	return &QueueManager{workflow: workflow, properties: properties}
}

// Enqueue encolado idempotente por (inmueble, tipo) mientras exista una PENDING.
func (q *QueueManager) Enqueue(ctx context.Context, propertyID, kind, requestedByUserID string) (*entity.ApprovalRequest, error) {
	return q.workflow.Enqueue(ctx, propertyID, kind, ToggleOptions{UserID: requestedByUserID})
}

// ListPendingFor lista los inmuebles con solicitud PENDING de tipo kind para la empresa.
// sortBy vacío = created_at; sortOrder "asc" | "desc" (vacío = desc).
func (q *QueueManager) ListPendingFor(ctx context.Context, companyID, kind, sortBy, sortOrder string) ([]*entity.PendingProperty, error) {
	allowed, ok := sortFields[kind]
	if !ok || companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if sortBy == "" {
		sortBy = repository.SortByCreatedAt
	}
	if !contains(allowed, sortBy) {
		return nil, domain.ErrInvalidInput
	}
	desc := true
	switch strings.ToLower(sortOrder) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, domain.ErrInvalidInput
	}
	if sortBy == repository.SortByPublicationRequestedAt {
		sortBy = repository.SortByRequestedAt
	}
	return q.properties.ListPending(ctx, repository.PendingQuery{
		CompanyID: companyID,
		Kind:      kind,
		SortBy:    sortBy,
		Desc:      desc,
	})
}

// ListMine inmuebles cuyas solicitudes pendientes fueron creadas por userID.
func (q *QueueManager) ListMine(ctx context.Context, companyID, userID string) (*MyPending, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := q.properties.ListPendingByRequester(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	out := &MyPending{
		PendingAvailability: []*entity.PendingProperty{},
		PendingPublication:  []*entity.PendingProperty{},
	}
	for _, item := range list {
		switch item.Request.Kind {
		case entity.ApprovalKindAvailability:
			out.PendingAvailability = append(out.PendingAvailability, item)
		case entity.ApprovalKindPublication:
			out.PendingPublication = append(out.PendingPublication, item)
		}
	}
	return out, nil
}

// Resolve delega en Approve/Reject del Workflow según decision.
func (q *QueueManager) Resolve(ctx context.Context, requestID, decision string, opts ResolveOptions) (*Resolution, error) {
	switch decision {
	case DecisionApprove:
		return q.workflow.Approve(ctx, requestID, ApproveOptions{
			CompanyID:      opts.CompanyID,
			UserID:         opts.UserID,
			ApplyWatermark: opts.ApplyWatermark,
			Strict:         opts.Strict,
		})
	case DecisionReject:
		return q.workflow.Reject(ctx, requestID, opts.Reason, RejectOptions{
			CompanyID: opts.CompanyID,
			UserID:    opts.UserID,
			Strict:    opts.Strict,
		})
	}
	return nil, domain.ErrInvalidInput
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
