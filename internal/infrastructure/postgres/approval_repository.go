package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var (
	_ repository.ApprovalRepository         = (*ApprovalRepo)(nil)
	_ repository.ApprovalSettingsRepository = (*ApprovalSettingsRepo)(nil)
	_ repository.WatermarkJobRepository     = (*WatermarkJobRepo)(nil)
)

const requestColumns = `
	ar.id, ar.company_id, ar.property_id, ar.kind, COALESCE(ar.requested_by_user_id::text, ''), ar.requested_at,
	ar.status, COALESCE(ar.resolved_by_user_id::text, ''), ar.resolved_at, COALESCE(ar.reason, ''), ar.watermark_requested`

// ApprovalRepo implementación del puerto ApprovalRepository sobre PostgreSQL (usable con pool o tx).
type ApprovalRepo struct {
	q Querier
}

// NewApprovalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovalRepository(q Querier) *ApprovalRepo {
	return &ApprovalRepo{q: q}
}

// Create inserta la solicitud. El índice único parcial approval_requests_one_pending
// garantiza una sola PENDING por (inmueble, tipo). ON CONFLICT DO NOTHING reporta el
// duplicado como ErrDuplicate sin abortar la transacción en curso.
func (r *ApprovalRepo) Create(ctx context.Context, req *entity.ApprovalRequest) error {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO approval_requests (id, company_id, property_id, kind, requested_by_user_id, requested_at,
			status, resolved_by_user_id, resolved_at, reason, watermark_requested)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, NULLIF($8, '')::uuid, $9, NULLIF($10, ''), $11)
		ON CONFLICT DO NOTHING`,
		req.ID, req.CompanyID, req.PropertyID, req.Kind, req.RequestedByUserID, req.RequestedAt,
		req.Status, req.ResolvedByUserID, req.ResolvedAt, req.Reason, req.WatermarkRequested,
	)
	if err != nil {
		return fmt.Errorf("insert approval request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *ApprovalRepo) GetByID(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM approval_requests ar WHERE ar.id = $1`, id)
}

// GetForUpdate obtiene la solicitud y bloquea la fila.
func (r *ApprovalRepo) GetForUpdate(ctx context.Context, id string) (*entity.ApprovalRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM approval_requests ar WHERE ar.id = $1 FOR UPDATE`, id)
}

// GetPending solicitud PENDING del inmueble para el tipo dado, si existe.
func (r *ApprovalRepo) GetPending(ctx context.Context, propertyID, kind string) (*entity.ApprovalRequest, error) {
	return r.getOne(ctx, `
		SELECT `+requestColumns+` FROM approval_requests ar
		WHERE ar.property_id = $1 AND ar.kind = $2 AND ar.status = 'PENDING'`, propertyID, kind)
}

// Resolve persiste la resolución solo si la fila sigue PENDING.
func (r *ApprovalRepo) Resolve(ctx context.Context, req *entity.ApprovalRequest) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE approval_requests
		SET status = $2, resolved_by_user_id = NULLIF($3, '')::uuid, resolved_at = $4,
			reason = NULLIF($5, ''), watermark_requested = $6
		WHERE id = $1 AND status = 'PENDING'`,
		req.ID, req.Status, req.ResolvedByUserID, req.ResolvedAt, req.Reason, req.WatermarkRequested,
	)
	if err != nil {
		return fmt.Errorf("resolve approval request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListByProperty historial de solicitudes del inmueble.
func (r *ApprovalRepo) ListByProperty(ctx context.Context, propertyID string) ([]*entity.ApprovalRequest, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+requestColumns+` FROM approval_requests ar
		WHERE ar.property_id = $1 ORDER BY ar.requested_at DESC, ar.id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list approval requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApprovalRequest
	for rows.Next() {
		var req entity.ApprovalRequest
		if err := rows.Scan(requestDest(&req)...); err != nil {
			return nil, fmt.Errorf("scan approval request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func (r *ApprovalRepo) getOne(ctx context.Context, query string, args ...any) (*entity.ApprovalRequest, error) {
	var req entity.ApprovalRequest
	if err := r.q.QueryRow(ctx, query, args...).Scan(requestDest(&req)...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval request: %w", err)
	}
	return &req, nil
}

func requestDest(req *entity.ApprovalRequest) []any {
	return []any{
		&req.ID, &req.CompanyID, &req.PropertyID, &req.Kind, &req.RequestedByUserID, &req.RequestedAt,
		&req.Status, &req.ResolvedByUserID, &req.ResolvedAt, &req.Reason, &req.WatermarkRequested,
	}
}

// ApprovalSettingsRepo configuración de aprobación por empresa.
type ApprovalSettingsRepo struct {
	q Querier
}

// NewApprovalSettingsRepository construye el adaptador.
func NewApprovalSettingsRepository(q Querier) *ApprovalSettingsRepo {
	return &ApprovalSettingsRepo{q: q}
}

// Get devuelve (nil, nil) si la empresa no tiene fila.
func (r *ApprovalSettingsRepo) Get(ctx context.Context, companyID string) (*entity.ApprovalSettings, error) {
	var s entity.ApprovalSettings
	err := r.q.QueryRow(ctx, `
		SELECT company_id, require_approval_to_be_available, require_approval_to_publish_on_site,
			apply_watermark_to_images, updated_at
		FROM approval_settings WHERE company_id = $1`, companyID).Scan(
		&s.CompanyID, &s.RequireApprovalToBeAvailable, &s.RequireApprovalToPublishOnSite,
		&s.ApplyWatermarkToImages, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza la configuración.
func (r *ApprovalSettingsRepo) Upsert(ctx context.Context, s *entity.ApprovalSettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO approval_settings (company_id, require_approval_to_be_available,
			require_approval_to_publish_on_site, apply_watermark_to_images, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET
			require_approval_to_be_available   = EXCLUDED.require_approval_to_be_available,
			require_approval_to_publish_on_site = EXCLUDED.require_approval_to_publish_on_site,
			apply_watermark_to_images          = EXCLUDED.apply_watermark_to_images,
			updated_at                         = EXCLUDED.updated_at`,
		s.CompanyID, s.RequireApprovalToBeAvailable, s.RequireApprovalToPublishOnSite,
		s.ApplyWatermarkToImages, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert approval settings: %w", err)
	}
	return nil
}

// WatermarkJobRepo cola de marca de agua en la tabla watermark_jobs.
type WatermarkJobRepo struct {
	q Querier
}

// NewWatermarkJobRepository construye el adaptador.
func NewWatermarkJobRepository(q Querier) *WatermarkJobRepo {
	return &WatermarkJobRepo{q: q}
}

// Enqueue inserta los trabajos en un único batch.
func (r *WatermarkJobRepo) Enqueue(ctx context.Context, jobs []*entity.WatermarkJob) error {
	b := &pgx.Batch{}
	for _, j := range jobs {
		b.Queue(`
			INSERT INTO watermark_jobs (id, property_id, image_id, image_url, request_id, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			j.ID, j.PropertyID, j.ImageID, j.ImageURL, j.RequestID, j.Status, j.CreatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("enqueue watermark jobs: %w", err)
	}
	return nil
}
