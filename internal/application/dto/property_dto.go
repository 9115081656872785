package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddressDTO dirección del inmueble.
type AddressDTO struct {
	Street       string `json:"street" validate:"max=200"`
	Number       string `json:"number" validate:"max=20"`
	Complement   string `json:"complement" validate:"max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"max=50"`
	ZipCode      string `json:"zip_code" validate:"max=20"`
}

// ImageDTO foto del inmueble. ID vacío = se genera.
type ImageDTO struct {
	ID        string `json:"id"`
	URL       string `json:"url" validate:"omitempty,url"`
	IsMain    bool   `json:"is_main"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// PropertyRequest atributos descriptivos (crear y reemplazar). Un borrador puede estar incompleto;
// la completitud se valida al pedir la disponibilidad.
type PropertyRequest struct {
	ResponsibleUserID string           `json:"responsible_user_id" validate:"omitempty,uuid"`
	Title             string           `json:"title" validate:"max=200"`
	Description       string           `json:"description" validate:"max=5000"`
	Type              string           `json:"type" validate:"omitempty,oneof=apartment house land commercial farm"`
	Address           AddressDTO       `json:"address"`
	TotalArea         decimal.Decimal  `json:"total_area" swaggertype:"string"`
	OwnerName         string           `json:"owner_name" validate:"max=200"`
	OwnerDocument     string           `json:"owner_document" validate:"max=30"`
	SalePrice         *decimal.Decimal `json:"sale_price" swaggertype:"string"`
	RentPrice         *decimal.Decimal `json:"rent_price" swaggertype:"string"`
	Images            []ImageDTO       `json:"images" validate:"dive"`
}

// PropertyResponse inmueble con estado visible y flags de cola.
type PropertyResponse struct {
	ID                             string           `json:"id"`
	CompanyID                      string           `json:"company_id"`
	ResponsibleUserID              string           `json:"responsible_user_id,omitempty"`
	Title                          string           `json:"title"`
	Description                    string           `json:"description"`
	Type                           string           `json:"type"`
	Address                        AddressDTO       `json:"address"`
	TotalArea                      decimal.Decimal  `json:"total_area" swaggertype:"string"`
	OwnerName                      string           `json:"owner_name"`
	OwnerDocument                  string           `json:"owner_document"`
	SalePrice                      *decimal.Decimal `json:"sale_price,omitempty" swaggertype:"string"`
	RentPrice                      *decimal.Decimal `json:"rent_price,omitempty" swaggertype:"string"`
	Status                         string           `json:"status"`
	IsActive                       bool             `json:"is_active"`
	IsAvailableForSite             bool             `json:"is_available_for_site"`
	HasPendingAvailabilityApproval bool             `json:"has_pending_availability_approval"`
	HasPendingPublicationApproval  bool             `json:"has_pending_publication_approval"`
	StalePublication               bool             `json:"stale_publication"`
	Images                         []ImageDTO       `json:"images"`
	CreatedAt                      time.Time        `json:"created_at"`
	UpdatedAt                      time.Time        `json:"updated_at"`
}

// PropertyListResponse lista paginada de inmuebles.
type PropertyListResponse struct {
	Items []PropertyResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// EligibilityResult resultado de una regla de elegibilidad.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// EligibilityResponse reporte de elegibilidad del inmueble.
type EligibilityResponse struct {
	PropertyID         string            `json:"property_id"`
	CanBecomeAvailable EligibilityResult `json:"can_become_available"`
	CanPublishOnSite   EligibilityResult `json:"can_publish_on_site"`
	StalePublication   bool              `json:"stale_publication"`
}

// TransitionResponse resultado de una acción sobre el inmueble.
type TransitionResponse struct {
	Action   string                   `json:"action"`
	Applied  bool                     `json:"applied"`
	Noop     bool                     `json:"noop"`
	Queued   bool                     `json:"queued"`
	Property PropertyResponse         `json:"property"`
	Request  *ApprovalRequestResponse `json:"request,omitempty"`
}
