package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
	"github.com/jhoicas/Inmobiliaria-api/pkg/slug"
)

// FeedUseCase genera el feed XML de inmuebles publicados que consume el sitio público.
type FeedUseCase struct {
	companies  repository.CompanyRepository
	properties repository.PropertyRepository
	baseURL    string
	now        func() time.Time
}

// NewFeedUseCase construye el caso de uso. baseURL es la raíz de las fichas del sitio.
func NewFeedUseCase(companies repository.CompanyRepository, properties repository.PropertyRepository, baseURL string) *FeedUseCase {
	return &FeedUseCase{
		companies:  companies,
		properties: properties,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// Build devuelve el feed de la empresa. Solo incluye inmuebles activos, disponibles y publicados.
func (uc *FeedUseCase) Build(ctx context.Context, companyID string) ([]byte, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.properties.ListPublished(ctx, companyID)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listings")
	root.CreateAttr("company_id", company.ID)
	root.CreateAttr("company_name", company.Name)
	root.CreateAttr("generated_at", uc.now().UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(list)))

	for _, p := range list {
		item := root.CreateElement("listing")
		item.CreateAttr("id", p.ID)
		item.CreateElement("title").SetText(p.Title)
		item.CreateElement("url").SetText(uc.listingURL(p.ID, p.Title, p.Address.Neighborhood, p.Address.City))
		item.CreateElement("type").SetText(p.Type)
		item.CreateElement("description").CreateCData(p.Description)

		addr := item.CreateElement("address")
		addr.CreateElement("neighborhood").SetText(p.Address.Neighborhood)
		addr.CreateElement("city").SetText(p.Address.City)
		addr.CreateElement("state").SetText(p.Address.State)
		addr.CreateElement("zip_code").SetText(p.Address.ZipCode)

		item.CreateElement("total_area").SetText(p.TotalArea.StringFixed(2))
		if p.SalePrice != nil {
			item.CreateElement("sale_price").SetText(p.SalePrice.StringFixed(2))
		}
		if p.RentPrice != nil {
			item.CreateElement("rent_price").SetText(p.RentPrice.StringFixed(2))
		}

		images := item.CreateElement("images")
		for _, img := range p.Images {
			if !img.Valid() {
				continue
			}
			el := images.CreateElement("image")
			if img.IsMain {
				el.CreateAttr("main", "true")
			}
			el.SetText(img.URL)
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("feed: serializar XML: %w", err)
	}
	return out.Bytes(), nil
}

// listingURL ficha pública: <base>/<slug>-<id>.
func (uc *FeedUseCase) listingURL(id string, parts ...string) string {
	s := slug.Make(parts...)
	if s == "" {
		return uc.baseURL + "/" + id
	}
	return uc.baseURL + "/" + s + "-" + id
}
