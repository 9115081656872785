package entity

import "time"

// Company representa una inmobiliaria/tenant del sistema (multi-tenant).
type Company struct {
	ID                 string
	Name               string
	Document           string // documento fiscal de la inmobiliaria
	Address            string
	Phone              string
	Email              string
	Status             string // active, suspended, inactive
	PublicListingLimit int    // máximo de inmuebles publicados en el sitio; 0 = sin límite
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Módulos SaaS disponibles (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleProperties      = "properties"
	ModuleSitePublication = "site_publication"
	ModuleInspections     = "inspections"
	ModuleFinancialAudit  = "financial_audit"
)

// CompanyModule representa la activación de un módulo SaaS en una empresa.
type CompanyModule struct {
	ID          string
	CompanyID   string
	ModuleName  string // ver constantes Module*
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
