// Package memory implementa los puertos de persistencia en memoria (tests y modo demo).
// Las transacciones se serializan: Run trabaja sobre una copia y la publica al confirmar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var _ approval.TxRunner = (*Store)(nil)

type data struct {
	properties map[string]*entity.Property
	requests   map[string]*entity.ApprovalRequest
}

func newData() *data {
	return &data{
		properties: make(map[string]*entity.Property),
		requests:   make(map[string]*entity.ApprovalRequest),
	}
}

func (d *data) clone() *data {
	out := newData()
	for id, p := range d.properties {
		out.properties[id] = cloneProperty(p)
	}
	for id, r := range d.requests {
		out.requests[id] = cloneRequest(r)
	}
	return out
}

// Store estado en memoria. txMu serializa a todos los escritores de inmuebles/solicitudes;
// mu protege los mapas para lecturas y escrituras puntuales.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	live *data

	settings  map[string]entity.ApprovalSettings
	companies map[string]*entity.Company
	modules   map[string]map[string]bool
	users     map[string]*entity.User
	jobs      []entity.WatermarkJob
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		live:      newData(),
		settings:  make(map[string]entity.ApprovalSettings),
		companies: make(map[string]*entity.Company),
		modules:   make(map[string]map[string]bool),
		users:     make(map[string]*entity.User),
	}
}

// Run ejecuta fn sobre una copia aislada; si fn no falla, la copia reemplaza el estado.
func (s *Store) Run(ctx context.Context, fn func(
	properties repository.PropertyRepository,
	approvals repository.ApprovalRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	view := s.live.clone()
	s.mu.Unlock()

	if err := fn(&PropertyRepo{s: s, view: view}, &ApprovalRepo{s: s, view: view}); err != nil {
		return err
	}

	s.mu.Lock()
	s.live = view
	s.mu.Unlock()
	return nil
}

// Properties repositorio de inmuebles fuera de transacción.
func (s *Store) Properties() *PropertyRepo {
	return &PropertyRepo{s: s}
}

// Approvals repositorio de solicitudes fuera de transacción.
func (s *Store) Approvals() *ApprovalRepo {
	return &ApprovalRepo{s: s}
}

// Settings repositorio de configuración de aprobación.
func (s *Store) Settings() *SettingsRepo {
	return &SettingsRepo{s: s}
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo {
	return &CompanyRepo{s: s}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

// WatermarkJobs cola de marca de agua.
func (s *Store) WatermarkJobs() *WatermarkJobRepo {
	return &WatermarkJobRepo{s: s}
}

// read ejecuta fn sobre la vista de la transacción o, fuera de ella, sobre el estado vivo.
func (s *Store) read(view *data, fn func(d *data)) {
	if view != nil {
		fn(view)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.live)
}

// write igual que read, pero fuera de transacción también excluye a las transacciones en curso.
func (s *Store) write(view *data, fn func(d *data) error) error {
	if view != nil {
		return fn(view)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.live)
}

func cloneProperty(p *entity.Property) *entity.Property {
	c := *p
	c.Images = append([]entity.PropertyImage(nil), p.Images...)
	if p.SalePrice != nil {
		v := *p.SalePrice
		c.SalePrice = &v
	}
	if p.RentPrice != nil {
		v := *p.RentPrice
		c.RentPrice = &v
	}
	return &c
}

func cloneRequest(r *entity.ApprovalRequest) *entity.ApprovalRequest {
	c := *r
	if r.ResolvedAt != nil {
		v := *r.ResolvedAt
		c.ResolvedAt = &v
	}
	return &c
}
