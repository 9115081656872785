package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository = (*CompanyRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// CompanyRepo implementa repository.CompanyRepository.
type CompanyRepo struct {
	s *Store
}

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.companies {
		if existing.ID == c.ID || (c.Document != "" && existing.Document == c.Document) {
			return domain.ErrDuplicate
		}
	}
	v := *c
	r.s.companies[c.ID] = &v
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	v := *c
	return &v, nil
}

func (r *CompanyRepo) GetByDocument(ctx context.Context, document string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.Document == document {
			v := *c
			return &v, nil
		}
	}
	return nil, nil
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	out := make([]*entity.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		v := *c
		out = append(out, &v)
	}
	r.s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *CompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.modules[companyID][moduleName], nil
}

func (r *CompanyRepo) SetModule(ctx context.Context, companyID, moduleName string, active bool, expiresAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		active = false
	}
	if r.s.modules[companyID] == nil {
		r.s.modules[companyID] = make(map[string]bool)
	}
	r.s.modules[companyID][moduleName] = active
	return nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
		if existing.ID == u.ID {
			return domain.ErrDuplicate
		}
	}
	v := *u
	r.s.users[u.ID] = &v
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email && u.CompanyID == companyID }), nil
}

func (r *UserRepo) find(match func(u *entity.User) bool) *entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			v := *u
			return &v
		}
	}
	return nil
}
