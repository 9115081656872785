package approval

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/repository"
)

var _ Watermarker = (*JobWatermarker)(nil)

// JobWatermarker implementa Watermarker encolando un trabajo por imagen válida;
// el procesamiento lo hace el worker externo de imágenes.
type JobWatermarker struct {
	jobs repository.WatermarkJobRepository
}

// NewJobWatermarker construye el adaptador.
func NewJobWatermarker(jobs repository.WatermarkJobRepository) *JobWatermarker {
	return &JobWatermarker{jobs: jobs}
}

// Watermark encola las imágenes válidas del inmueble.
func (w *JobWatermarker) Watermark(ctx context.Context, p *entity.Property, requestID string) error {
	now := time.Now()
	jobs := make([]*entity.WatermarkJob, 0, len(p.Images))
	for _, img := range p.Images {
		if !img.Valid() {
			continue
		}
		jobs = append(jobs, &entity.WatermarkJob{
			ID:         uuid.New().String(),
			PropertyID: p.ID,
			ImageID:    img.ID,
			ImageURL:   img.URL,
			RequestID:  requestID,
			Status:     entity.WatermarkJobPending,
			CreatedAt:  now,
		})
	}
	if len(jobs) == 0 {
		return nil
	}
	return w.jobs.Enqueue(ctx, jobs)
}
