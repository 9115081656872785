package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un inmueble. Un inmueble tiene exactamente un estado a la vez.
const (
	PropertyStatusDraft       = "draft"
	PropertyStatusAvailable   = "available"
	PropertyStatusRented      = "rented"
	PropertyStatusSold        = "sold"
	PropertyStatusMaintenance = "maintenance"

	// PropertyStatusPendingApproval valor heredado; se acepta al leer pero la máquina de estados
	// nunca lo escribe: la aprobación pendiente se modela con ApprovalRequest.
	PropertyStatusPendingApproval = "pending_approval"
)

// MinSiteImages imágenes válidas mínimas para publicar en el sitio.
const MinSiteImages = 5

// Address dirección completa del inmueble.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

// PropertyImage foto del inmueble; solo cuenta como válida si URL no está vacía.
type PropertyImage struct {
	ID        string
	URL       string
	IsMain    bool
	SortOrder int
}

// Valid informa si la imagen tiene URL.
func (i PropertyImage) Valid() bool {
	return strings.TrimSpace(i.URL) != ""
}

// PropertyState tupla de estado visible que muta la máquina de estados.
type PropertyState struct {
	Status             string
	IsActive           bool
	IsAvailableForSite bool
}

// Property representa un inmueble del back-office (multi-empresa).
// IsAvailableForSite se persiste: publicar y aprobar son acciones puntuales, no una evaluación continua.
type Property struct {
	ID                 string
	CompanyID          string
	ResponsibleUserID  string
	Title              string
	Description        string
	Type               string // apartment, house, land, commercial...
	Address            Address
	TotalArea          decimal.Decimal // m²
	OwnerName          string
	OwnerDocument      string
	SalePrice          *decimal.Decimal
	RentPrice          *decimal.Decimal
	Status             string
	IsActive           bool
	IsAvailableForSite bool
	Images             []PropertyImage

	// Derivados de la cola de aprobación (no se persisten en properties).
	HasPendingAvailabilityApproval bool
	HasPendingPublicationApproval  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State devuelve la tupla de estado actual.
func (p *Property) State() PropertyState {
	return PropertyState{Status: p.Status, IsActive: p.IsActive, IsAvailableForSite: p.IsAvailableForSite}
}

// SetState aplica una tupla de estado completa.
func (p *Property) SetState(s PropertyState) {
	p.Status = s.Status
	p.IsActive = s.IsActive
	p.IsAvailableForSite = s.IsAvailableForSite
}

// ValidImageCount cantidad de imágenes con URL.
func (p *Property) ValidImageCount() int {
	n := 0
	for _, img := range p.Images {
		if img.Valid() {
			n++
		}
	}
	return n
}

// MainImage devuelve la imagen principal válida o, si no hay, la primera válida.
func (p *Property) MainImage() (PropertyImage, bool) {
	var first *PropertyImage
	for i := range p.Images {
		img := p.Images[i]
		if !img.Valid() {
			continue
		}
		if img.IsMain {
			return img, true
		}
		if first == nil {
			first = &p.Images[i]
		}
	}
	if first == nil {
		return PropertyImage{}, false
	}
	return *first, true
}

// PendingProperty inmueble enriquecido con la solicitud pendiente que lo mantiene en cola.
type PendingProperty struct {
	Property *Property
	Request  *ApprovalRequest
}
