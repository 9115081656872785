// Package property contiene las reglas puras del flujo de disponibilidad y publicación
// de inmuebles: evaluador de elegibilidad y máquina de estados. No hace I/O.
package property

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Result resultado de una evaluación: Eligible y todos los motivos que fallaron.
type Result struct {
	Eligible bool
	Reasons  []string
}

func newResult(reasons []string) Result {
	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}

// CanBecomeAvailable verifica que el inmueble tenga los datos completos para salir de borrador.
func CanBecomeAvailable(p *entity.Property) Result {
	var reasons []string
	if blank(p.Title) {
		reasons = append(reasons, "title is required")
	}
	if blank(p.Description) {
		reasons = append(reasons, "description is required")
	}
	if blank(p.Type) {
		reasons = append(reasons, "type is required")
	}
	if missing := missingAddressFields(p.Address); len(missing) > 0 {
		reasons = append(reasons, "address is incomplete: missing "+strings.Join(missing, ", "))
	}
	if !p.TotalArea.GreaterThan(decimal.Zero) {
		reasons = append(reasons, "total area must be greater than zero")
	}
	if blank(p.OwnerName) {
		reasons = append(reasons, "owner name is required")
	}
	if blank(p.OwnerDocument) {
		reasons = append(reasons, "owner document is required")
	}
	if !positive(p.SalePrice) && !positive(p.RentPrice) {
		reasons = append(reasons, "sale or rent price is required")
	}
	return newResult(reasons)
}

// CanPublishOnSite verifica las condiciones para exponer el inmueble en el sitio público.
// Los motivos se acumulan (no corta en el primero).
func CanPublishOnSite(p *entity.Property) Result {
	var reasons []string
	if !p.IsActive {
		reasons = append(reasons, "must be active")
	}
	if p.Status != entity.PropertyStatusAvailable {
		reasons = append(reasons, "status must be available")
	}
	if n := p.ValidImageCount(); n < entity.MinSiteImages {
		reasons = append(reasons, fmt.Sprintf("needs %d images, has %d", entity.MinSiteImages, n))
	}
	return newResult(reasons)
}

// IsStalePublication informa si el inmueble sigue publicado sin cumplir hoy las reglas
// (p. ej. desactivado después de publicar). Se reporta al leer; no se corrige aquí.
func IsStalePublication(p *entity.Property) bool {
	return p.IsAvailableForSite && !CanPublishOnSite(p).Eligible
}

func missingAddressFields(a entity.Address) []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"street", a.Street},
		{"number", a.Number},
		{"neighborhood", a.Neighborhood},
		{"city", a.City},
		{"state", a.State},
		{"zip_code", a.ZipCode},
	}
	for _, f := range fields {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.GreaterThan(decimal.Zero)
}
