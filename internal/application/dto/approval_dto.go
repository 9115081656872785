package dto

import "time"

// ApprovalRequestResponse solicitud de aprobación.
type ApprovalRequestResponse struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"company_id"`
	PropertyID         string     `json:"property_id"`
	Kind               string     `json:"kind"`
	RequestedByUserID  string     `json:"requested_by_user_id,omitempty"`
	RequestedAt        time.Time  `json:"requested_at"`
	Status             string     `json:"status"`
	ResolvedByUserID   string     `json:"resolved_by_user_id,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	WatermarkRequested bool       `json:"watermark_requested"`
}

// PendingPropertyResponse inmueble en cola junto con su solicitud.
type PendingPropertyResponse struct {
	Property PropertyResponse        `json:"property"`
	Request  ApprovalRequestResponse `json:"request"`
}

// PendingListResponse cola de un tipo.
type PendingListResponse struct {
	Kind  string                    `json:"kind"`
	Items []PendingPropertyResponse `json:"items"`
}

// MyPendingResponse solicitudes pendientes creadas por el usuario.
type MyPendingResponse struct {
	PendingAvailability []PendingPropertyResponse `json:"pending_availability"`
	PendingPublication  []PendingPropertyResponse `json:"pending_publication"`
}

// EnqueueRequest encolado directo de una solicitud de aprobación.
type EnqueueRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=AVAILABILITY PUBLICATION"`
}

// ApproveRequest cuerpo opcional de aprobación.
type ApproveRequest struct {
	// ApplyWatermark sobrescribe la configuración de la empresa; null = usar configuración.
	ApplyWatermark *bool `json:"apply_watermark"`
}

// RejectRequest cuerpo de rechazo; reason es obligatorio.
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// ResolutionResponse resultado de aprobar o rechazar.
type ResolutionResponse struct {
	Request         ApprovalRequestResponse `json:"request"`
	Property        PropertyResponse        `json:"property"`
	AlreadyResolved bool                    `json:"already_resolved"`
}

// ApprovalHistoryResponse historial de solicitudes de un inmueble.
type ApprovalHistoryResponse struct {
	Items []ApprovalRequestResponse `json:"items"`
}

// ApprovalSettingsResponse configuración de aprobación de la empresa.
type ApprovalSettingsResponse struct {
	CompanyID                      string    `json:"company_id"`
	RequireApprovalToBeAvailable   bool      `json:"require_approval_to_be_available"`
	RequireApprovalToPublishOnSite bool      `json:"require_approval_to_publish_on_site"`
	ApplyWatermarkToImages         bool      `json:"apply_watermark_to_images"`
	UpdatedAt                      time.Time `json:"updated_at"`
}

// UpdateApprovalSettingsRequest actualización parcial; los campos null no cambian.
type UpdateApprovalSettingsRequest struct {
	RequireApprovalToBeAvailable   *bool `json:"require_approval_to_be_available"`
	RequireApprovalToPublishOnSite *bool `json:"require_approval_to_publish_on_site"`
	ApplyWatermarkToImages         *bool `json:"apply_watermark_to_images"`
}
