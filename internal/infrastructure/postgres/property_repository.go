package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// Columnas de properties con los flags de cola calculados (no se persisten).
const propertyColumns = `
	p.id, p.company_id, COALESCE(p.responsible_user_id::text, ''), p.title, p.description, p.type,
	p.street, p.number, p.complement, p.neighborhood, p.city, p.state, p.zip_code,
	p.total_area, p.owner_name, p.owner_document, p.sale_price, p.rent_price,
	p.status, p.is_active, p.is_available_for_site,
	EXISTS (SELECT 1 FROM approval_requests a WHERE a.property_id = p.id AND a.kind = 'AVAILABILITY' AND a.status = 'PENDING'),
	EXISTS (SELECT 1 FROM approval_requests a WHERE a.property_id = p.id AND a.kind = 'PUBLICATION' AND a.status = 'PENDING'),
	p.created_at, p.updated_at`

// publishedFilter inmuebles visibles en el sitio público.
const publishedFilter = `p.is_active = true AND p.is_available_for_site = true AND p.status = 'available'`

// Whitelist de ORDER BY para las colas (nunca se interpola entrada del usuario).
var pendingOrderColumns = map[string]string{
	repository.SortByCreatedAt:              "p.created_at",
	repository.SortByUpdatedAt:              "p.updated_at",
	repository.SortByRequestedAt:            "ar.requested_at",
	repository.SortByPublicationRequestedAt: "ar.requested_at",
}

// PropertyRepo implementación del puerto PropertyRepository sobre PostgreSQL (usable con pool o tx).
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

// Create persiste el inmueble y sus imágenes en un único batch (transacción implícita).
func (r *PropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO properties (id, company_id, responsible_user_id, title, description, type,
			street, number, complement, neighborhood, city, state, zip_code,
			total_area, owner_name, owner_document, sale_price, rent_price,
			status, is_active, is_available_for_site, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		p.ID, p.CompanyID, p.ResponsibleUserID, p.Title, p.Description, p.Type,
		p.Address.Street, p.Address.Number, p.Address.Complement, p.Address.Neighborhood,
		p.Address.City, p.Address.State, p.Address.ZipCode,
		p.TotalArea, p.OwnerName, p.OwnerDocument, p.SalePrice, p.RentPrice,
		p.Status, p.IsActive, p.IsAvailableForSite, p.CreatedAt, p.UpdatedAt,
	)
	queueImages(b, p)
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID obtiene un inmueble con imágenes y flags de cola.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	return r.getOne(ctx, `SELECT `+propertyColumns+` FROM properties p WHERE p.id = $1`, id)
}

// GetForUpdate obtiene el inmueble y bloquea la fila (SELECT FOR UPDATE).
func (r *PropertyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Property, error) {
	return r.getOne(ctx, `SELECT `+propertyColumns+` FROM properties p WHERE p.id = $1 FOR UPDATE OF p`, id)
}

// Update actualiza atributos descriptivos y reemplaza las imágenes. No toca estado ni flags.
func (r *PropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	b := &pgx.Batch{}
	b.Queue(`
		UPDATE properties SET responsible_user_id = NULLIF($2, '')::uuid, title = $3, description = $4, type = $5,
			street = $6, number = $7, complement = $8, neighborhood = $9, city = $10, state = $11, zip_code = $12,
			total_area = $13, owner_name = $14, owner_document = $15, sale_price = $16, rent_price = $17,
			updated_at = $18
		WHERE id = $1`,
		p.ID, p.ResponsibleUserID, p.Title, p.Description, p.Type,
		p.Address.Street, p.Address.Number, p.Address.Complement, p.Address.Neighborhood,
		p.Address.City, p.Address.State, p.Address.ZipCode,
		p.TotalArea, p.OwnerName, p.OwnerDocument, p.SalePrice, p.RentPrice, p.UpdatedAt,
	)
	b.Queue(`DELETE FROM property_images WHERE property_id = $1`, p.ID)
	queueImages(b, p)

	br := r.q.SendBatch(ctx, b)
	cmd, err := br.Exec()
	if err != nil {
		_ = br.Close()
		return fmt.Errorf("update property: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		_ = br.Close()
		return domain.ErrNotFound
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("update property images: %w", err)
	}
	return nil
}

// UpdateState escritura condicional de la tupla de estado: 0 filas = otro escritor ganó.
func (r *PropertyRepo) UpdateState(ctx context.Context, id string, from, to entity.PropertyState, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE properties SET status = $5, is_active = $6, is_available_for_site = $7, updated_at = $8
		WHERE id = $1 AND status = $2 AND is_active = $3 AND is_available_for_site = $4`,
		id, from.Status, from.IsActive, from.IsAvailableForSite,
		to.Status, to.IsActive, to.IsAvailableForSite, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property state: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListByCompany lista inmuebles de la empresa con paginación.
func (r *PropertyRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Property, error) {
	return r.list(ctx, `
		SELECT `+propertyColumns+` FROM properties p
		WHERE p.company_id = $1 ORDER BY p.created_at DESC, p.id LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListPending inmuebles con solicitud PENDING del tipo pedido.
func (r *PropertyRepo) ListPending(ctx context.Context, q repository.PendingQuery) ([]*entity.PendingProperty, error) {
	col, ok := pendingOrderColumns[q.SortBy]
	if !ok {
		col = pendingOrderColumns[repository.SortByCreatedAt]
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	query := `
		SELECT ` + propertyColumns + `, ` + requestColumns + `
		FROM approval_requests ar
		JOIN properties p ON p.id = ar.property_id
		WHERE ar.company_id = $1 AND ar.kind = $2 AND ar.status = 'PENDING'
		ORDER BY ` + col + ` ` + dir + `, p.id`
	return r.listPending(ctx, query, q.CompanyID, q.Kind)
}

// ListPendingByRequester inmuebles con solicitudes PENDING creadas por el usuario.
func (r *PropertyRepo) ListPendingByRequester(ctx context.Context, companyID, userID string) ([]*entity.PendingProperty, error) {
	query := `
		SELECT ` + propertyColumns + `, ` + requestColumns + `
		FROM approval_requests ar
		JOIN properties p ON p.id = ar.property_id
		WHERE ar.company_id = $1 AND ar.requested_by_user_id::text = $2 AND ar.status = 'PENDING'
		ORDER BY ar.requested_at DESC, ar.id`
	return r.listPending(ctx, query, companyID, userID)
}

// ListPublished inmuebles expuestos en el sitio público.
func (r *PropertyRepo) ListPublished(ctx context.Context, companyID string) ([]*entity.Property, error) {
	return r.list(ctx, `
		SELECT `+propertyColumns+` FROM properties p
		WHERE p.company_id = $1 AND `+publishedFilter+`
		ORDER BY p.updated_at DESC, p.id`, companyID)
}

// CountPublished cantidad de inmuebles publicados de la empresa.
func (r *PropertyRepo) CountPublished(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM properties p WHERE p.company_id = $1 AND `+publishedFilter, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count published: %w", err)
	}
	return n, nil
}

func (r *PropertyRepo) getOne(ctx context.Context, query, id string) (*entity.Property, error) {
	p, err := scanProperty(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	if err := r.loadImages(ctx, []*entity.Property{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Property, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var list []*entity.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PropertyRepo) listPending(ctx context.Context, query string, args ...any) ([]*entity.PendingProperty, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.PendingProperty
		props []*entity.Property
	)
	for rows.Next() {
		var (
			p   entity.Property
			req entity.ApprovalRequest
		)
		dest := append(propertyDest(&p), requestDest(&req)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan pending: %w", err)
		}
		list = append(list, &entity.PendingProperty{Property: &p, Request: &req})
		props = append(props, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, props); err != nil {
		return nil, err
	}
	return list, nil
}

// loadImages carga las imágenes de todos los inmuebles en una sola consulta.
func (r *PropertyRepo) loadImages(ctx context.Context, list []*entity.Property) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Property, len(list))
	ids := make([]string, 0, len(list))
	for _, p := range list {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, property_id::text, url, is_main, sort_order
		FROM property_images WHERE property_id::text = ANY($1)
		ORDER BY property_id, sort_order, id`, ids)
	if err != nil {
		return fmt.Errorf("list property images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			img        entity.PropertyImage
			propertyID string
		)
		if err := rows.Scan(&img.ID, &propertyID, &img.URL, &img.IsMain, &img.SortOrder); err != nil {
			return fmt.Errorf("scan property image: %w", err)
		}
		if p, ok := byID[propertyID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

func queueImages(b *pgx.Batch, p *entity.Property) {
	for _, img := range p.Images {
		b.Queue(`
			INSERT INTO property_images (id, property_id, url, is_main, sort_order)
			VALUES ($1, $2, $3, $4, $5)`,
			img.ID, p.ID, img.URL, img.IsMain, img.SortOrder)
	}
}

func propertyDest(p *entity.Property) []any {
	return []any{
		&p.ID, &p.CompanyID, &p.ResponsibleUserID, &p.Title, &p.Description, &p.Type,
		&p.Address.Street, &p.Address.Number, &p.Address.Complement, &p.Address.Neighborhood,
		&p.Address.City, &p.Address.State, &p.Address.ZipCode,
		&p.TotalArea, &p.OwnerName, &p.OwnerDocument, &p.SalePrice, &p.RentPrice,
		&p.Status, &p.IsActive, &p.IsAvailableForSite,
		&p.HasPendingAvailabilityApproval, &p.HasPendingPublicationApproval,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func scanProperty(row scanner) (*entity.Property, error) {
	var p entity.Property
	if err := row.Scan(propertyDest(&p)...); err != nil {
		return nil, err
	}
	return &p, nil
}
