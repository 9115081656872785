package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name               string `json:"name" validate:"required,min=1,max=200"`
	Document           string `json:"document" validate:"required,min=1,max=20"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	Email              string `json:"email" validate:"omitempty,email"`
	PublicListingLimit int    `json:"public_listing_limit" validate:"min=0"`
}

// CompanyResponse salida de una empresa (sin datos sensibles).
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Document           string    `json:"document"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	Status             string    `json:"status"`
	PublicListingLimit int       `json:"public_listing_limit"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SetModuleRequest activa o desactiva un módulo del plan.
type SetModuleRequest struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}
