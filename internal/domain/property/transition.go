package property

import (
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

// Action intención del operador sobre un inmueble (no una escritura de campos).
type Action string

const (
	ActionRequestAvailable Action = "request_available"
	ActionRequestPublish   Action = "request_publish"
	ActionRequestUnpublish Action = "request_unpublish"
	ActionMarkSold         Action = "mark_sold"
	ActionMarkRented       Action = "mark_rented"
	ActionMarkMaintenance  Action = "mark_maintenance"
	ActionActivate         Action = "activate"
	ActionDeactivate       Action = "deactivate"
)

// ValidAction informa si a es una acción conocida.
func ValidAction(a Action) bool {
	switch a {
	case ActionRequestAvailable, ActionRequestPublish, ActionRequestUnpublish,
		ActionMarkSold, ActionMarkRented, ActionMarkMaintenance,
		ActionActivate, ActionDeactivate:
		return true
	}
	return false
}

// Gates compuertas de aprobación vigentes para la empresa del inmueble.
type Gates struct {
	RequireAvailabilityApproval bool
	RequirePublicationApproval  bool
}

// Decision efecto calculado de una acción sobre un snapshot.
//   - Noop: el inmueble ya estaba en el estado destino; éxito sin cambios.
//   - Enqueue != "": la transición queda diferida a una ApprovalRequest de ese tipo; To == From.
//   - en otro caso se debe persistir To de forma atómica.
type Decision struct {
	Action  Action
	From    entity.PropertyState
	To      entity.PropertyState
	Noop    bool
	Enqueue string
}

// Applies informa si la decisión cambia el estado persistido.
func (d Decision) Applies() bool {
	return !d.Noop && d.Enqueue == ""
}

// Decide calcula la transición para action. extraReasons son motivos adicionales
// (p. ej. límites del plan) que bloquean la publicación; solo se consideran en request_publish.
// Devuelve domain.WorkflowError INELIGIBLE_TRANSITION si no se cumplen las precondiciones.
func Decide(p *entity.Property, action Action, gates Gates, extraReasons []string) (Decision, error) {
	from := p.State()
	d := Decision{Action: action, From: from, To: from}

	switch action {
	case ActionRequestAvailable:
		if from.Status == entity.PropertyStatusAvailable {
			d.Noop = true
			return d, nil
		}
		if !canLeaveForAvailable(from.Status) {
			return d, domain.Ineligible("status must be draft or maintenance")
		}
		if r := CanBecomeAvailable(p); !r.Eligible {
			return d, domain.Ineligible(r.Reasons...)
		}
		if gates.RequireAvailabilityApproval {
			d.Enqueue = entity.ApprovalKindAvailability
			return d, nil
		}
		d.To.Status = entity.PropertyStatusAvailable

	case ActionRequestPublish:
		if from.IsAvailableForSite {
			d.Noop = true
			return d, nil
		}
		reasons := append(CanPublishOnSite(p).Reasons, extraReasons...)
		if len(reasons) > 0 {
			return d, domain.Ineligible(reasons...)
		}
		if gates.RequirePublicationApproval {
			d.Enqueue = entity.ApprovalKindPublication
			return d, nil
		}
		d.To.IsAvailableForSite = true

	case ActionRequestUnpublish:
		if !from.IsAvailableForSite {
			d.Noop = true
			return d, nil
		}
		d.To.IsAvailableForSite = false

	case ActionMarkSold, ActionMarkRented:
		target := entity.PropertyStatusSold
		if action == ActionMarkRented {
			target = entity.PropertyStatusRented
		}
		if from.Status == target {
			// Ya vendido/alquilado: solo corrige una publicación residual.
			d.To.IsAvailableForSite = false
			d.Noop = !from.IsAvailableForSite
			return d, nil
		}
		if from.Status != entity.PropertyStatusAvailable {
			return d, domain.Ineligible("status must be available")
		}
		// Se despublica en la misma tupla que cambia el estado: nunca sold/rented + publicado.
		d.To.IsAvailableForSite = false
		d.To.Status = target

	case ActionMarkMaintenance:
		if from.Status == entity.PropertyStatusMaintenance {
			d.To.IsAvailableForSite = false
			d.Noop = !from.IsAvailableForSite
			return d, nil
		}
		switch from.Status {
		case entity.PropertyStatusAvailable, entity.PropertyStatusRented, entity.PropertyStatusSold:
		default:
			return d, domain.Ineligible("status must be available, rented or sold")
		}
		d.To.IsAvailableForSite = false
		d.To.Status = entity.PropertyStatusMaintenance

	case ActionActivate, ActionDeactivate:
		active := action == ActionActivate
		if from.IsActive == active {
			d.Noop = true
			return d, nil
		}
		// Desactivar no despublica: el flag queda obsoleto y se reporta al leer.
		d.To.IsActive = active

	default:
		return d, domain.ErrInvalidInput
	}
	return d, nil
}

// DecideApproved calcula la transición diferida por una solicitud aprobada de tipo kind.
// Revalida la elegibilidad: el inmueble pudo cambiar mientras la solicitud estaba en cola.
func DecideApproved(p *entity.Property, kind string, extraReasons []string) (Decision, error) {
	switch kind {
	case entity.ApprovalKindAvailability:
		return Decide(p, ActionRequestAvailable, Gates{}, nil)
	case entity.ApprovalKindPublication:
		return Decide(p, ActionRequestPublish, Gates{}, extraReasons)
	}
	return Decision{}, domain.ErrInvalidInput
}

func canLeaveForAvailable(status string) bool {
	switch status {
	case entity.PropertyStatusDraft, entity.PropertyStatusMaintenance, entity.PropertyStatusPendingApproval:
		return true
	}
	return false
}
