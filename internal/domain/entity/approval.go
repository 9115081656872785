package entity

import "time"

// Tipos de solicitud de aprobación.
const (
	ApprovalKindAvailability = "AVAILABILITY"
	ApprovalKindPublication  = "PUBLICATION"
)

// Estados de una solicitud de aprobación.
const (
	ApprovalStatusPending  = "PENDING"
	ApprovalStatusApproved = "APPROVED"
	ApprovalStatusRejected = "REJECTED"
)

// ApprovalRequest solicitud de aprobación manual de una transición.
// Como máximo existe una PENDING por (PropertyID, Kind).
type ApprovalRequest struct {
	ID                 string
	CompanyID          string
	PropertyID         string
	Kind               string // ver ApprovalKind*
	RequestedByUserID  string
	RequestedAt        time.Time
	Status             string // ver ApprovalStatus*
	ResolvedByUserID   string
	ResolvedAt         *time.Time
	Reason             string // obligatorio al rechazar
	// WatermarkRequested se pidió marca de agua al aprobar; no confirma que se haya aplicado.
	WatermarkRequested bool
}

// IsPending informa si la solicitud sigue abierta.
func (r *ApprovalRequest) IsPending() bool {
	return r.Status == ApprovalStatusPending
}

// ValidApprovalKind informa si kind es un tipo de solicitud conocido.
func ValidApprovalKind(kind string) bool {
	return kind == ApprovalKindAvailability || kind == ApprovalKindPublication
}

// ApprovalSettings configuración de aprobación por empresa.
type ApprovalSettings struct {
	CompanyID                      string
	RequireApprovalToBeAvailable   bool
	RequireApprovalToPublishOnSite bool
	ApplyWatermarkToImages         bool // valor por defecto al aprobar; se puede sobrescribir por llamada
	UpdatedAt                      time.Time
}

// DefaultApprovalSettings valores del sistema: sin compuertas, marca de agua activa.
func DefaultApprovalSettings(companyID string) ApprovalSettings {
	return ApprovalSettings{
		CompanyID:              companyID,
		ApplyWatermarkToImages: true,
	}
}

// Estados de un trabajo de marca de agua.
const (
	WatermarkJobPending = "pending"
	WatermarkJobDone    = "done"
	WatermarkJobFailed  = "failed"
)

// WatermarkJob imagen encolada para procesar por el worker externo de imágenes.
type WatermarkJob struct {
	ID         string
	PropertyID string
	ImageID    string
	ImageURL   string
	RequestID  string
	Status     string
	CreatedAt  time.Time
}
