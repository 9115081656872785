package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementa repository.PropertyRepository. view != nil = dentro de Run.
type PropertyRepo struct {
	s    *Store
	view *data
}

func (r *PropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	return r.s.write(r.view, func(d *data) error {
		if _, ok := d.properties[p.ID]; ok {
			return domain.ErrDuplicate
		}
		d.properties[p.ID] = cloneProperty(p)
		return nil
	})
}

func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	var out *entity.Property
	r.s.read(r.view, func(d *data) {
		if p, ok := d.properties[id]; ok {
			out = d.snapshot(p)
		}
	})
	return out, nil
}

// GetForUpdate en memoria el bloqueo lo da la serialización de Run.
func (r *PropertyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Property, error) {
	return r.GetByID(ctx, id)
}

func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	return r.s.write(r.view, func(d *data) error {
		cur, ok := d.properties[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := cloneProperty(p)
		next.SetState(cur.State())
		next.CompanyID = cur.CompanyID
		next.CreatedAt = cur.CreatedAt
		d.properties[p.ID] = next
		return nil
	})
}

func (r *PropertyRepo) UpdateState(ctx context.Context, id string, from, to entity.PropertyState, updatedAt time.Time) error {
	return r.s.write(r.view, func(d *data) error {
		cur, ok := d.properties[id]
		if !ok || cur.State() != from {
			return domain.ErrConflict
		}
		cur.SetState(to)
		cur.UpdatedAt = updatedAt
		return nil
	})
}

func (r *PropertyRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Property, error) {
	var out []*entity.Property
	r.s.read(r.view, func(d *data) {
		for _, p := range d.properties {
			if p.CompanyID == companyID {
				out = append(out, d.snapshot(p))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *PropertyRepo) ListPending(ctx context.Context, q repository.PendingQuery) ([]*entity.PendingProperty, error) {
	out := r.pending(func(req *entity.ApprovalRequest) bool {
		return req.CompanyID == q.CompanyID && req.Kind == q.Kind
	})
	key := func(pp *entity.PendingProperty) time.Time {
		switch q.SortBy {
		case repository.SortByUpdatedAt:
			return pp.Property.UpdatedAt
		case repository.SortByRequestedAt, repository.SortByPublicationRequestedAt:
			return pp.Request.RequestedAt
		}
		return pp.Property.CreatedAt
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if !a.Equal(b) {
			if q.Desc {
				return a.After(b)
			}
			return a.Before(b)
		}
		return out[i].Property.ID < out[j].Property.ID
	})
	return out, nil
}

func (r *PropertyRepo) ListPendingByRequester(ctx context.Context, companyID, userID string) ([]*entity.PendingProperty, error) {
	out := r.pending(func(req *entity.ApprovalRequest) bool {
		return req.CompanyID == companyID && req.RequestedByUserID == userID
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Request.RequestedAt, out[j].Request.RequestedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return out[i].Request.ID < out[j].Request.ID
	})
	return out, nil
}

func (r *PropertyRepo) ListPublished(ctx context.Context, companyID string) ([]*entity.Property, error) {
	var out []*entity.Property
	r.s.read(r.view, func(d *data) {
		for _, p := range d.properties {
			if p.CompanyID == companyID && published(p) {
				out = append(out, d.snapshot(p))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PropertyRepo) CountPublished(ctx context.Context, companyID string) (int, error) {
	n := 0
	r.s.read(r.view, func(d *data) {
		for _, p := range d.properties {
			if p.CompanyID == companyID && published(p) {
				n++
			}
		}
	})
	return n, nil
}

func (r *PropertyRepo) pending(match func(req *entity.ApprovalRequest) bool) []*entity.PendingProperty {
	var out []*entity.PendingProperty
	r.s.read(r.view, func(d *data) {
		for _, req := range d.requests {
			if !req.IsPending() || !match(req) {
				continue
			}
			p, ok := d.properties[req.PropertyID]
			if !ok {
				continue
			}
			out = append(out, &entity.PendingProperty{Property: d.snapshot(p), Request: cloneRequest(req)})
		}
	})
	return out
}

// snapshot copia el inmueble con los flags de solicitudes pendientes calculados.
func (d *data) snapshot(p *entity.Property) *entity.Property {
	c := cloneProperty(p)
	for _, req := range d.requests {
		if req.PropertyID != p.ID || !req.IsPending() {
			continue
		}
		switch req.Kind {
		case entity.ApprovalKindAvailability:
			c.HasPendingAvailabilityApproval = true
		case entity.ApprovalKindPublication:
			c.HasPendingPublicationApproval = true
		}
	}
	return c
}

func published(p *entity.Property) bool {
	return p.IsActive && p.IsAvailableForSite && p.Status == entity.PropertyStatusAvailable
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
