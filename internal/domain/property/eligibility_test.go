package property_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
)

func images(n int) []entity.PropertyImage {
	list := make([]entity.PropertyImage, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, entity.PropertyImage{
			ID:     fmt.Sprintf("img-%d", i),
			URL:    fmt.Sprintf("https://cdn.example.com/%d.jpg", i),
			IsMain: i == 0,
		})
	}
	return list
}

// completeDraft inmueble en borrador con todos los datos obligatorios.
func completeDraft() *entity.Property {
	price := decimal.NewFromInt(350000)
	return &entity.Property{
		ID:          "prop-1",
		CompanyID:   "company-1",
		Title:       "Apartamento 2 quartos",
		Description: "Próximo ao metrô",
		Type:        "apartment",
		Address: entity.Address{
			Street: "Rua Augusta", Number: "100", Neighborhood: "Consolação",
			City: "São Paulo", State: "SP", ZipCode: "01304-000",
		},
		TotalArea:     decimal.NewFromInt(72),
		OwnerName:     "Maria Souza",
		OwnerDocument: "123.456.789-00",
		SalePrice:     &price,
		Status:        entity.PropertyStatusDraft,
		IsActive:      true,
	}
}

func TestCanBecomeAvailable_Completo(t *testing.T) {
	r := property.CanBecomeAvailable(completeDraft())
	assert.True(t, r.Eligible)
	assert.Empty(t, r.Reasons)
}

func TestCanBecomeAvailable_AcumulaMotivos(t *testing.T) {
	p := completeDraft()
	p.Title = "  "
	p.Address.City = ""
	p.Address.ZipCode = ""
	p.TotalArea = decimal.Zero
	p.OwnerDocument = ""
	p.SalePrice = nil

	r := property.CanBecomeAvailable(p)

	assert.False(t, r.Eligible)
	assert.Equal(t, []string{
		"title is required",
		"address is incomplete: missing city, zip_code",
		"total area must be greater than zero",
		"owner document is required",
		"sale or rent price is required",
	}, r.Reasons)
}

func TestCanBecomeAvailable_SoloAlquiler(t *testing.T) {
	p := completeDraft()
	rent := decimal.NewFromInt(2500)
	p.SalePrice = nil
	p.RentPrice = &rent
	assert.True(t, property.CanBecomeAvailable(p).Eligible)
}

func TestCanPublishOnSite(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *entity.Property)
		reasons []string
	}{
		{
			name:   "elegible",
			mutate: func(p *entity.Property) {},
		},
		{
			name:    "tres imagenes",
			mutate:  func(p *entity.Property) { p.Images = images(3) },
			reasons: []string{"needs 5 images, has 3"},
		},
		{
			name: "imagenes sin url no cuentan",
			mutate: func(p *entity.Property) {
				p.Images = append(images(4), entity.PropertyImage{ID: "x", URL: " "})
			},
			reasons: []string{"needs 5 images, has 4"},
		},
		{
			name: "todos los motivos juntos",
			mutate: func(p *entity.Property) {
				p.IsActive = false
				p.Status = entity.PropertyStatusDraft
				p.Images = nil
			},
			reasons: []string{"must be active", "status must be available", "needs 5 images, has 0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := completeDraft()
			p.Status = entity.PropertyStatusAvailable
			p.Images = images(5)
			tt.mutate(p)

			r := property.CanPublishOnSite(p)
			assert.Equal(t, len(tt.reasons) == 0, r.Eligible)
			assert.Equal(t, tt.reasons, r.Reasons)
		})
	}
}

func TestCanPublishOnSite_EsPuro(t *testing.T) {
	p := completeDraft()
	p.Images = images(2)
	first := property.CanPublishOnSite(p)
	second := property.CanPublishOnSite(p)
	assert.Equal(t, first, second)
	assert.Len(t, p.Images, 2)
}

func TestIsStalePublication(t *testing.T) {
	p := completeDraft()
	p.Status = entity.PropertyStatusAvailable
	p.Images = images(5)
	p.IsAvailableForSite = true
	assert.False(t, property.IsStalePublication(p))

	p.IsActive = false
	assert.True(t, property.IsStalePublication(p))
}
