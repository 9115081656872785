package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

// PropertyUseCase casos de uso de los atributos descriptivos del inmueble.
// El estado (status, activo, publicado) solo cambia vía approval.Workflow.
type PropertyUseCase struct {
	properties repository.PropertyRepository
	approvals  repository.ApprovalRepository
	now        func() time.Time
}

// NewPropertyUseCase construye el caso de uso.
func NewPropertyUseCase(properties repository.PropertyRepository, approvals repository.ApprovalRepository) *PropertyUseCase {
	return &PropertyUseCase{properties: properties, approvals: approvals, now: time.Now}
}

// Create registra un inmueble en borrador, activo y sin publicar.
// Si no se indica responsable, queda a cargo de quien lo crea.
func (uc *PropertyUseCase) Create(ctx context.Context, companyID, userID string, in dto.PropertyRequest) (*dto.PropertyResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	p := &entity.Property{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Status:             entity.PropertyStatusDraft,
		IsActive:           true,
		IsAvailableForSite: false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	applyPropertyRequest(p, in)
	if p.ResponsibleUserID == "" {
		p.ResponsibleUserID = userID
	}
	if err := uc.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	out := ToPropertyResponse(p)
	return &out, nil
}

// GetByID obtiene el inmueble con sus flags de cola. Otra empresa = no encontrado.
func (uc *PropertyUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PropertyResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := ToPropertyResponse(p)
	return &out, nil
}

// List lista los inmuebles de la empresa con paginación.
func (uc *PropertyUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.PropertyListResponse, error) {
	list, err := uc.properties.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PropertyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, ToPropertyResponse(p))
	}
	return &dto.PropertyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update reemplaza los atributos descriptivos e imágenes. No toca el estado: un inmueble
// publicado que deja de cumplir las reglas sigue publicado y se informa como publicación obsoleta.
func (uc *PropertyUseCase) Update(ctx context.Context, companyID, id string, in dto.PropertyRequest) (*dto.PropertyResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	responsible := p.ResponsibleUserID
	applyPropertyRequest(p, in)
	if p.ResponsibleUserID == "" {
		p.ResponsibleUserID = responsible
	}
	p.UpdatedAt = uc.now()
	if err := uc.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Eligibility evalúa las reglas de disponibilidad y publicación sin modificar nada.
func (uc *PropertyUseCase) Eligibility(ctx context.Context, companyID, id string) (*dto.EligibilityResponse, error) {
	p, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	avail := property.CanBecomeAvailable(p)
	pub := property.CanPublishOnSite(p)
	return &dto.EligibilityResponse{
		PropertyID:         p.ID,
		CanBecomeAvailable: dto.EligibilityResult{Eligible: avail.Eligible, Reasons: nonNil(avail.Reasons)},
		CanPublishOnSite:   dto.EligibilityResult{Eligible: pub.Eligible, Reasons: nonNil(pub.Reasons)},
		StalePublication:   property.IsStalePublication(p),
	}, nil
}

// History historial de solicitudes de aprobación del inmueble.
func (uc *PropertyUseCase) History(ctx context.Context, companyID, id string) (*dto.ApprovalHistoryResponse, error) {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return nil, err
	}
	list, err := uc.approvals.ListByProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApprovalRequestResponse, 0, len(list))
	for _, r := range list {
		items = append(items, ToApprovalRequestResponse(r))
	}
	return &dto.ApprovalHistoryResponse{Items: items}, nil
}

func (uc *PropertyUseCase) load(ctx context.Context, companyID, id string) (*entity.Property, error) {
	p, err := uc.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func applyPropertyRequest(p *entity.Property, in dto.PropertyRequest) {
	if in.ResponsibleUserID != "" {
		p.ResponsibleUserID = in.ResponsibleUserID
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Type = in.Type
	p.Address = entity.Address{
		Street:       in.Address.Street,
		Number:       in.Address.Number,
		Complement:   in.Address.Complement,
		Neighborhood: in.Address.Neighborhood,
		City:         in.Address.City,
		State:        in.Address.State,
		ZipCode:      in.Address.ZipCode,
	}
	p.TotalArea = in.TotalArea
	p.OwnerName = in.OwnerName
	p.OwnerDocument = in.OwnerDocument
	p.SalePrice = in.SalePrice
	p.RentPrice = in.RentPrice
	p.Images = toImages(in.Images)
}

// toImages genera IDs faltantes, ordena por SortOrder y deja una sola imagen principal
// (la marcada primero o, si ninguna, la primera con URL).
func toImages(in []dto.ImageDTO) []entity.PropertyImage {
	out := make([]entity.PropertyImage, 0, len(in))
	for i, img := range in {
		id := img.ID
		if id == "" {
			id = uuid.New().String()
		}
		order := img.SortOrder
		if order == 0 {
			order = i
		}
		out = append(out, entity.PropertyImage{ID: id, URL: img.URL, IsMain: img.IsMain, SortOrder: order})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })

	main := -1
	for i := range out {
		if out[i].IsMain && main < 0 {
			main = i
		}
		out[i].IsMain = false
	}
	if main < 0 {
		for i := range out {
			if out[i].Valid() {
				main = i
				break
			}
		}
	}
	if main >= 0 {
		out[main].IsMain = true
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
