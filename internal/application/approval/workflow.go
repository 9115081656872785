// Package approval orquesta el flujo de disponibilidad y publicación de inmuebles:
// aplica las decisiones de la máquina de estados (domain/property) de forma atómica
// o las difiere a la cola de aprobación cuando la empresa lo exige.
package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
	"github.com/jhoicas/Inmobiliaria-api/pkg/logger"
)

// ReasonApprovalNoLongerRequired motivo registrado al cerrar una solicitud pendiente
// cuya transición se aplicó sin aprobación.
const ReasonApprovalNoLongerRequired = "approval no longer required"

// ToggleOptions contexto del operador que solicita la acción.
type ToggleOptions struct {
	CompanyID string // si no está vacío, el inmueble debe pertenecer a esta empresa
	UserID    string
	// StrictEnqueue desactiva el encolado idempotente: si ya hay una solicitud
	// pendiente se devuelve CONFLICTING_PENDING_REQUEST.
	StrictEnqueue bool
}

// TransitionResult snapshot autoritativo posterior a la acción.
type TransitionResult struct {
	Action   property.Action
	Property *entity.Property
	Request  *entity.ApprovalRequest // solicitud creada o existente si la acción quedó en cola
	Applied  bool                    // el estado visible cambió
	Noop     bool                    // ya estaba en el estado destino
}

// Queued informa si la acción quedó a la espera de aprobación.
func (r *TransitionResult) Queued() bool {
	return r.Request != nil && r.Request.IsPending()
}

// ApproveOptions opciones de aprobación.
type ApproveOptions struct {
	CompanyID string
	UserID    string
	// ApplyWatermark sobrescribe el valor por defecto de la empresa; nil = usar configuración.
	ApplyWatermark *bool
	// Strict devuelve ALREADY_RESOLVED en lugar de la resolución previa.
	Strict bool
}

// RejectOptions opciones de rechazo.
type RejectOptions struct {
	CompanyID string
	UserID    string
	Strict    bool
}

// Resolution resultado de aprobar o rechazar.
type Resolution struct {
	Request         *entity.ApprovalRequest
	Property        *entity.Property
	AlreadyResolved bool // la solicitud ya estaba resuelta; no se aplicó nada
}

// Option configura el Workflow.
type Option func(*Workflow)

// WithPublishChecks agrega predicados de publicación (límites del plan, etc.).
func WithPublishChecks(checks ...PublishCheck) Option {
	return func(w *Workflow) { w.checks = append(w.checks, checks...) }
}

// WithWatermarker define el servicio de marca de agua.
func WithWatermarker(wm Watermarker) Option {
	return func(w *Workflow) { w.watermarker = wm }
}

// WithLogger define el logger.
func WithLogger(l *logger.Logger) Option {
	return func(w *Workflow) { w.log = l }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// Workflow controlador de acciones sobre inmuebles y resolución de solicitudes.
type Workflow struct {
	tx          TxRunner
	settings    *SettingsService
	watermarker Watermarker
	checks      []PublishCheck
	log         *logger.Logger
	now         func() time.Time
}

// NewWorkflow construye el controlador.
func NewWorkflow(tx TxRunner, settings *SettingsService, opts ...Option) *Workflow {
	w := &Workflow{
		tx:       tx,
		settings: settings,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RequestAvailable DRAFT/MAINTENANCE → AVAILABLE (o solicitud AVAILABILITY si la empresa lo exige).
func (w *Workflow) RequestAvailable(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionRequestAvailable, opts)
}

// RequestPublish publica en el sitio (o solicitud PUBLICATION si la empresa lo exige).
func (w *Workflow) RequestPublish(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionRequestPublish, opts)
}

// RequestUnpublish retira del sitio; nunca requiere aprobación.
func (w *Workflow) RequestUnpublish(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionRequestUnpublish, opts)
}

// MarkSold AVAILABLE → SOLD, despublicando en la misma actualización.
func (w *Workflow) MarkSold(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionMarkSold, opts)
}

// MarkRented AVAILABLE → RENTED, despublicando en la misma actualización.
func (w *Workflow) MarkRented(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionMarkRented, opts)
}

// MarkMaintenance AVAILABLE/RENTED/SOLD → MAINTENANCE, despublicando.
func (w *Workflow) MarkMaintenance(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionMarkMaintenance, opts)
}

// Activate marca el inmueble como activo.
func (w *Workflow) Activate(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionActivate, opts)
}

// Deactivate marca el inmueble como inactivo sin despublicarlo.
func (w *Workflow) Deactivate(ctx context.Context, propertyID string, opts ToggleOptions) (*TransitionResult, error) {
	return w.Toggle(ctx, propertyID, property.ActionDeactivate, opts)
}

// Toggle ejecuta una acción como unidad atómica: bloquea el inmueble, evalúa y
// aplica la transición o encola la solicitud de aprobación.
func (w *Workflow) Toggle(ctx context.Context, propertyID string, action property.Action, opts ToggleOptions) (*TransitionResult, error) {
	if !property.ValidAction(action) {
		return nil, domain.ErrInvalidInput
	}
	var result *TransitionResult
	err := w.tx.Run(ctx, func(properties repository.PropertyRepository, approvals repository.ApprovalRepository) error {
		p, err := lockProperty(ctx, properties, propertyID, opts.CompanyID)
		if err != nil {
			return err
		}
		result = &TransitionResult{Action: action, Property: p}

		settings, err := w.settings.Get(ctx, p.CompanyID)
		if err != nil {
			return err
		}
		var extra []string
		if action == property.ActionRequestPublish && !p.IsAvailableForSite {
			if extra, err = w.runPublishChecks(ctx, p); err != nil {
				return err
			}
		}
		d, err := property.Decide(p, action, gatesFrom(settings), extra)
		if err != nil {
			return err
		}

		switch {
		case d.Noop:
			result.Noop = true
		case d.Enqueue != "":
			existing, err := approvals.GetPending(ctx, p.ID, d.Enqueue)
			if err != nil {
				return err
			}
			if existing != nil {
				if opts.StrictEnqueue {
					return domain.NewWorkflowError(domain.KindConflictingPendingRequest,
						fmt.Sprintf("%s request %s already pending", strings.ToLower(d.Enqueue), existing.ID))
				}
				result.Request = existing
				break
			}
			req, err := enqueue(ctx, approvals, p, d.Enqueue, opts.UserID, w.now())
			if err != nil {
				return err
			}
			result.Request = req
		default:
			if err := w.apply(ctx, properties, p, d); err != nil {
				return err
			}
			result.Applied = true
			if kind := enqueueKind(action); kind != "" {
				if err := w.settleLeftover(ctx, approvals, p.ID, kind, opts.UserID); err != nil {
					return err
				}
			}
		}
		return enrich(ctx, approvals, p)
	})
	if err != nil {
		return nil, err
	}

	ev := w.log.Info().
		Str("property_id", propertyID).
		Str("action", string(action)).
		Bool("applied", result.Applied).
		Bool("noop", result.Noop)
	if result.Request != nil {
		ev = ev.Str("request_id", result.Request.ID)
	}
	ev.Msg("acción sobre inmueble")
	return result, nil
}

// Approve resuelve una solicitud PENDING como APPROVED y aplica la transición diferida.
// Aprobar una solicitud ya resuelta devuelve la resolución existente (idempotente).
func (w *Workflow) Approve(ctx context.Context, requestID string, opts ApproveOptions) (*Resolution, error) {
	var (
		res       *Resolution
		watermark bool
	)
	err := w.tx.Run(ctx, func(properties repository.PropertyRepository, approvals repository.ApprovalRepository) error {
		req, p, err := lockRequest(ctx, properties, approvals, requestID, opts.CompanyID)
		if err != nil {
			return err
		}
		res = &Resolution{Request: req, Property: p}
		if !req.IsPending() {
			if opts.Strict {
				return alreadyResolved(req)
			}
			res.AlreadyResolved = true
			return enrich(ctx, approvals, p)
		}

		settings, err := w.settings.Get(ctx, p.CompanyID)
		if err != nil {
			return err
		}
		watermark = settings.ApplyWatermarkToImages
		if opts.ApplyWatermark != nil {
			watermark = *opts.ApplyWatermark
		}

		var extra []string
		if req.Kind == entity.ApprovalKindPublication && !p.IsAvailableForSite {
			if extra, err = w.runPublishChecks(ctx, p); err != nil {
				return err
			}
		}
		d, err := property.DecideApproved(p, req.Kind, extra)
		if err != nil {
			return err
		}
		if d.Applies() {
			if err := w.apply(ctx, properties, p, d); err != nil {
				return err
			}
		}

		now := w.now()
		req.Status = entity.ApprovalStatusApproved
		req.ResolvedByUserID = opts.UserID
		req.ResolvedAt = &now
		req.WatermarkRequested = watermark
		if err := approvals.Resolve(ctx, req); err != nil {
			return err
		}
		return enrich(ctx, approvals, p)
	})
	if err != nil {
		return nil, err
	}
	if res.AlreadyResolved {
		return res, nil
	}

	w.log.Info().
		Str("request_id", res.Request.ID).
		Str("property_id", res.Property.ID).
		Str("kind", res.Request.Kind).
		Bool("watermark", watermark).
		Msg("solicitud aprobada")

	// Marca de agua después del commit: un fallo nunca revierte la aprobación.
	if watermark && w.watermarker != nil {
		if err := w.watermarker.Watermark(ctx, res.Property, res.Request.ID); err != nil {
			w.log.Warn().Err(err).
				Str("request_id", res.Request.ID).
				Str("property_id", res.Property.ID).
				Msg("marca de agua no aplicada")
		}
	}
	return res, nil
}

// Reject resuelve una solicitud PENDING como REJECTED. reason es obligatorio.
// El estado visible del inmueble no cambia.
func (w *Workflow) Reject(ctx context.Context, requestID, reason string, opts RejectOptions) (*Resolution, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewWorkflowError(domain.KindInvalidRejection, "reason is required")
	}
	var res *Resolution
	err := w.tx.Run(ctx, func(properties repository.PropertyRepository, approvals repository.ApprovalRepository) error {
		req, p, err := lockRequest(ctx, properties, approvals, requestID, opts.CompanyID)
		if err != nil {
			return err
		}
		res = &Resolution{Request: req, Property: p}
		if !req.IsPending() {
			if opts.Strict {
				return alreadyResolved(req)
			}
			res.AlreadyResolved = true
			return enrich(ctx, approvals, p)
		}
		now := w.now()
		req.Status = entity.ApprovalStatusRejected
		req.Reason = reason
		req.ResolvedByUserID = opts.UserID
		req.ResolvedAt = &now
		if err := approvals.Resolve(ctx, req); err != nil {
			return err
		}
		return enrich(ctx, approvals, p)
	})
	if err != nil {
		return nil, err
	}
	if !res.AlreadyResolved {
		w.log.Info().
			Str("request_id", res.Request.ID).
			Str("property_id", res.Property.ID).
			Str("kind", res.Request.Kind).
			Msg("solicitud rechazada")
	}
	return res, nil
}

// Enqueue crea (o devuelve la existente) una solicitud PENDING de tipo kind para el inmueble.
// No evalúa elegibilidad: la aprobación la revalida.
func (w *Workflow) Enqueue(ctx context.Context, propertyID, kind string, opts ToggleOptions) (*entity.ApprovalRequest, error) {
	if !entity.ValidApprovalKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	var req *entity.ApprovalRequest
	err := w.tx.Run(ctx, func(properties repository.PropertyRepository, approvals repository.ApprovalRepository) error {
		p, err := lockProperty(ctx, properties, propertyID, opts.CompanyID)
		if err != nil {
			return err
		}
		existing, err := approvals.GetPending(ctx, p.ID, kind)
		if err != nil {
			return err
		}
		if existing != nil {
			if opts.StrictEnqueue {
				return domain.NewWorkflowError(domain.KindConflictingPendingRequest,
					fmt.Sprintf("%s request %s already pending", strings.ToLower(kind), existing.ID))
			}
			req = existing
			return nil
		}
		req, err = enqueue(ctx, approvals, p, kind, opts.UserID, w.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (w *Workflow) apply(ctx context.Context, properties repository.PropertyRepository, p *entity.Property, d property.Decision) error {
	now := w.now()
	if err := properties.UpdateState(ctx, p.ID, d.From, d.To, now); err != nil {
		return err
	}
	p.SetState(d.To)
	p.UpdatedAt = now
	return nil
}

// settleLeftover cierra como APPROVED la solicitud PENDING que quedó sin objeto porque
// la transición se aplicó directamente (la compuerta se desactivó mientras estaba en cola).
func (w *Workflow) settleLeftover(ctx context.Context, approvals repository.ApprovalRepository, propertyID, kind, userID string) error {
	leftover, err := approvals.GetPending(ctx, propertyID, kind)
	if err != nil || leftover == nil {
		return err
	}
	now := w.now()
	leftover.Status = entity.ApprovalStatusApproved
	leftover.ResolvedByUserID = userID
	leftover.ResolvedAt = &now
	leftover.Reason = ReasonApprovalNoLongerRequired
	return approvals.Resolve(ctx, leftover)
}

func (w *Workflow) runPublishChecks(ctx context.Context, p *entity.Property) ([]string, error) {
	var reasons []string
	for _, check := range w.checks {
		r, err := check(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("publish check: %w", err)
		}
		reasons = append(reasons, r...)
	}
	return reasons, nil
}

// enqueue inserta la solicitud. Si otra transacción ganó la carrera (índice único
// de PENDING por inmueble y tipo) devuelve la solicitud ganadora.
func enqueue(ctx context.Context, approvals repository.ApprovalRepository, p *entity.Property, kind, userID string, now time.Time) (*entity.ApprovalRequest, error) {
	req := &entity.ApprovalRequest{
		ID:                uuid.New().String(),
		CompanyID:         p.CompanyID,
		PropertyID:        p.ID,
		Kind:              kind,
		RequestedByUserID: userID,
		RequestedAt:       now,
		Status:            entity.ApprovalStatusPending,
	}
	err := approvals.Create(ctx, req)
	if errors.Is(err, domain.ErrDuplicate) {
		existing, getErr := approvals.GetPending(ctx, p.ID, kind)
		if getErr != nil {
			return nil, getErr
		}
		if existing != nil {
			return existing, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func lockProperty(ctx context.Context, properties repository.PropertyRepository, propertyID, companyID string) (*entity.Property, error) {
	if propertyID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := properties.GetForUpdate(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || (companyID != "" && p.CompanyID != companyID) {
		return nil, domain.NewWorkflowError(domain.KindNotFound, "property not found")
	}
	return p, nil
}

// lockRequest bloquea primero el inmueble y luego la solicitud (mismo orden que Toggle).
func lockRequest(ctx context.Context, properties repository.PropertyRepository, approvals repository.ApprovalRepository, requestID, companyID string) (*entity.ApprovalRequest, *entity.Property, error) {
	if requestID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	peek, err := approvals.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if peek == nil || (companyID != "" && peek.CompanyID != companyID) {
		return nil, nil, domain.NewWorkflowError(domain.KindNotFound, "approval request not found")
	}
	p, err := lockProperty(ctx, properties, peek.PropertyID, companyID)
	if err != nil {
		return nil, nil, err
	}
	req, err := approvals.GetForUpdate(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, domain.NewWorkflowError(domain.KindNotFound, "approval request not found")
	}
	return req, p, nil
}

func enrich(ctx context.Context, approvals repository.ApprovalRepository, p *entity.Property) error {
	avail, err := approvals.GetPending(ctx, p.ID, entity.ApprovalKindAvailability)
	if err != nil {
		return err
	}
	pub, err := approvals.GetPending(ctx, p.ID, entity.ApprovalKindPublication)
	if err != nil {
		return err
	}
	p.HasPendingAvailabilityApproval = avail != nil
	p.HasPendingPublicationApproval = pub != nil
	return nil
}

func alreadyResolved(req *entity.ApprovalRequest) error {
	return domain.NewWorkflowError(domain.KindAlreadyResolved,
		fmt.Sprintf("request already %s", strings.ToLower(req.Status)))
}

func enqueueKind(action property.Action) string {
	switch action {
	case property.ActionRequestAvailable:
		return entity.ApprovalKindAvailability
	case property.ActionRequestPublish:
		return entity.ApprovalKindPublication
	}
	return ""
}

func gatesFrom(s entity.ApprovalSettings) property.Gates {
	return property.Gates{
		RequireAvailabilityApproval: s.RequireApprovalToBeAvailable,
		RequirePublicationApproval:  s.RequireApprovalToPublishOnSite,
	}
}
