package usecase

import (
	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/dto"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
)

// ToPropertyResponse mapea el inmueble a su DTO de salida.
func ToPropertyResponse(p *entity.Property) dto.PropertyResponse {
	images := make([]dto.ImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, dto.ImageDTO{ID: img.ID, URL: img.URL, IsMain: img.IsMain, SortOrder: img.SortOrder})
	}
	return dto.PropertyResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		ResponsibleUserID: p.ResponsibleUserID,
		Title:             p.Title,
		Description:       p.Description,
		Type:              p.Type,
		Address: dto.AddressDTO{
			Street:       p.Address.Street,
			Number:       p.Address.Number,
			Complement:   p.Address.Complement,
			Neighborhood: p.Address.Neighborhood,
			City:         p.Address.City,
			State:        p.Address.State,
			ZipCode:      p.Address.ZipCode,
		},
		TotalArea:                      p.TotalArea,
		OwnerName:                      p.OwnerName,
		OwnerDocument:                  p.OwnerDocument,
		SalePrice:                      p.SalePrice,
		RentPrice:                      p.RentPrice,
		Status:                         p.Status,
		IsActive:                       p.IsActive,
		IsAvailableForSite:             p.IsAvailableForSite,
		HasPendingAvailabilityApproval: p.HasPendingAvailabilityApproval,
		HasPendingPublicationApproval:  p.HasPendingPublicationApproval,
		StalePublication:               property.IsStalePublication(p),
		Images:                         images,
		CreatedAt:                      p.CreatedAt,
		UpdatedAt:                      p.UpdatedAt,
	}
}

// ToApprovalRequestResponse mapea la solicitud a su DTO.
func ToApprovalRequestResponse(r *entity.ApprovalRequest) dto.ApprovalRequestResponse {
	return dto.ApprovalRequestResponse{
		ID:                 r.ID,
		CompanyID:          r.CompanyID,
		PropertyID:         r.PropertyID,
		Kind:               r.Kind,
		RequestedByUserID:  r.RequestedByUserID,
		RequestedAt:        r.RequestedAt,
		Status:             r.Status,
		ResolvedByUserID:   r.ResolvedByUserID,
		ResolvedAt:         r.ResolvedAt,
		Reason:             r.Reason,
		WatermarkRequested: r.WatermarkRequested,
	}
}

// ToPendingResponses mapea una cola (nunca devuelve nil).
func ToPendingResponses(list []*entity.PendingProperty) []dto.PendingPropertyResponse {
	out := make([]dto.PendingPropertyResponse, 0, len(list))
	for _, pp := range list {
		out = append(out, dto.PendingPropertyResponse{
			Property: ToPropertyResponse(pp.Property),
			Request:  ToApprovalRequestResponse(pp.Request),
		})
	}
	return out
}

// ToSettingsResponse mapea la configuración de aprobación.
func ToSettingsResponse(s entity.ApprovalSettings) dto.ApprovalSettingsResponse {
	return dto.ApprovalSettingsResponse{
		CompanyID:                      s.CompanyID,
		RequireApprovalToBeAvailable:   s.RequireApprovalToBeAvailable,
		RequireApprovalToPublishOnSite: s.RequireApprovalToPublishOnSite,
		ApplyWatermarkToImages:         s.ApplyWatermarkToImages,
		UpdatedAt:                      s.UpdatedAt,
	}
}

// ToTransitionResponse mapea el resultado de una acción sobre el inmueble.
func ToTransitionResponse(r *approval.TransitionResult) dto.TransitionResponse {
	out := dto.TransitionResponse{
		Action:   string(r.Action),
		Applied:  r.Applied,
		Noop:     r.Noop,
		Queued:   r.Queued(),
		Property: ToPropertyResponse(r.Property),
	}
	if r.Request != nil {
		req := ToApprovalRequestResponse(r.Request)
		out.Request = &req
	}
	return out
}

// ToResolutionResponse mapea el resultado de aprobar o rechazar.
func ToResolutionResponse(r *approval.Resolution) dto.ResolutionResponse {
	return dto.ResolutionResponse{
		Request:         ToApprovalRequestResponse(r.Request),
		Property:        ToPropertyResponse(r.Property),
		AlreadyResolved: r.AlreadyResolved,
	}
}
