package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var (
	_ repository.ApprovalRepository         = (*ApprovalRepo)(nil)
	_ repository.ApprovalSettingsRepository = (*SettingsRepo)(nil)
	_ repository.WatermarkJobRepository     = (*WatermarkJobRepo)(nil)
)

// ApprovalRepo implementa repository.ApprovalRepository.
type ApprovalRepo struct {
	s    *Store
	view *data
}

// Create replica el índice único parcial: una PENDING por (inmueble, tipo).
func (r *ApprovalRepo) Create(ctx context.Context, req *entity.ApprovalRequest) error {
	return r.s.write(r.view, func(d *data) error {
		if _, ok := d.requests[req.ID]; ok {
			return domain.ErrDuplicate
		}
		if req.IsPending() && findPending(d, req.PropertyID, req.Kind) != nil {
			return domain.ErrDuplicate
		}
		d.requests[req.ID] = cloneRequest(req)
		return nil
	})
}

func (r *ApprovalRepo) GetByID(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	var out *entity.ApprovalRequest
	r.s.read(r.view, func(d *data) {
		if req, ok := d.requests[id]; ok {
			out = cloneRequest(req)
		}
	})
	return out, nil
}

func (r *ApprovalRepo) GetForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *ApprovalRepo) GetPending(ctx context.Context, propertyID, kind string) (*entity.ApprovalRequest, error) {
	var out *entity.ApprovalRequest
	r.s.read(r.view, func(d *data) {
		if req := findPending(d, propertyID, kind); req != nil {
			out = cloneRequest(req)
		}
	})
	return out, nil
}

func (r *ApprovalRepo) Resolve(ctx context.Context, req *entity.ApprovalRequest) error {
	return r.s.write(r.view, func(d *data) error {
		cur, ok := d.requests[req.ID]
		if !ok || !cur.IsPending() {
			return domain.ErrConflict
		}
		d.requests[req.ID] = cloneRequest(req)
		return nil
	})
}

// ListByProperty historial de solicitudes de un inmueble (más recientes primero).
func (r *ApprovalRepo) ListByProperty(ctx context.Context, propertyID string) ([]*entity.ApprovalRequest, error) {
	var out []*entity.ApprovalRequest
	r.s.read(r.view, func(d *data) {
		for _, req := range d.requests {
			if req.PropertyID == propertyID {
				out = append(out, cloneRequest(req))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func findPending(d *data, propertyID, kind string) *entity.ApprovalRequest {
	for _, req := range d.requests {
		if req.PropertyID == propertyID && req.Kind == kind && req.IsPending() {
			return req
		}
	}
	return nil
}

// SettingsRepo implementa repository.ApprovalSettingsRepository.
type SettingsRepo struct {
	s *Store
}

func (r *SettingsRepo) Get(ctx context.Context, companyID string) (*entity.ApprovalSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.settings[companyID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, st *entity.ApprovalSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[st.CompanyID] = *st
	return nil
}

// WatermarkJobRepo implementa repository.WatermarkJobRepository.
type WatermarkJobRepo struct {
	s *Store
}

func (r *WatermarkJobRepo) Enqueue(ctx context.Context, jobs []*entity.WatermarkJob) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range jobs {
		r.s.jobs = append(r.s.jobs, *j)
	}
	return nil
}

// Jobs trabajos encolados, en orden de llegada.
func (r *WatermarkJobRepo) Jobs() []entity.WatermarkJob {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entity.WatermarkJob(nil), r.s.jobs...)
}
