package property_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/property"
)

func availableWithImages(n int) *entity.Property {
	p := completeDraft()
	p.Status = entity.PropertyStatusAvailable
	p.Images = images(n)
	return p
}

func TestDecide_RequestAvailable(t *testing.T) {
	t.Run("sin compuerta aplica", func(t *testing.T) {
		d, err := property.Decide(completeDraft(), property.ActionRequestAvailable, property.Gates{}, nil)
		require.NoError(t, err)
		assert.True(t, d.Applies())
		assert.Equal(t, entity.PropertyStatusAvailable, d.To.Status)
	})

	t.Run("con compuerta encola y no cambia", func(t *testing.T) {
		p := completeDraft()
		d, err := property.Decide(p, property.ActionRequestAvailable, property.Gates{RequireAvailabilityApproval: true}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.ApprovalKindAvailability, d.Enqueue)
		assert.Equal(t, d.From, d.To)
		assert.False(t, d.Applies())
	})

	t.Run("incompleto bloquea aunque haya compuerta", func(t *testing.T) {
		p := completeDraft()
		p.Description = ""
		_, err := property.Decide(p, property.ActionRequestAvailable, property.Gates{RequireAvailabilityApproval: true}, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))
		assert.Equal(t, []string{"description is required"}, domain.ReasonsOf(err))
	})

	t.Run("ya disponible es noop", func(t *testing.T) {
		d, err := property.Decide(availableWithImages(0), property.ActionRequestAvailable, property.Gates{}, nil)
		require.NoError(t, err)
		assert.True(t, d.Noop)
	})

	t.Run("desde mantenimiento", func(t *testing.T) {
		p := completeDraft()
		p.Status = entity.PropertyStatusMaintenance
		d, err := property.Decide(p, property.ActionRequestAvailable, property.Gates{}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.PropertyStatusAvailable, d.To.Status)
	})

	t.Run("desde vendido no", func(t *testing.T) {
		p := completeDraft()
		p.Status = entity.PropertyStatusSold
		_, err := property.Decide(p, property.ActionRequestAvailable, property.Gates{}, nil)
		assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))
	})
}

func TestDecide_RequestPublish(t *testing.T) {
	t.Run("tres imagenes", func(t *testing.T) {
		p := availableWithImages(3)
		_, err := property.Decide(p, property.ActionRequestPublish, property.Gates{}, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))
		assert.Contains(t, domain.ReasonsOf(err), "needs 5 images, has 3")
		assert.False(t, p.IsAvailableForSite)
	})

	t.Run("motivos del plan se suman", func(t *testing.T) {
		p := availableWithImages(3)
		_, err := property.Decide(p, property.ActionRequestPublish, property.Gates{}, []string{"plan does not include site publication"})
		assert.Equal(t, []string{"needs 5 images, has 3", "plan does not include site publication"}, domain.ReasonsOf(err))
	})

	t.Run("con compuerta encola", func(t *testing.T) {
		d, err := property.Decide(availableWithImages(5), property.ActionRequestPublish, property.Gates{RequirePublicationApproval: true}, nil)
		require.NoError(t, err)
		assert.Equal(t, entity.ApprovalKindPublication, d.Enqueue)
		assert.False(t, d.To.IsAvailableForSite)
	})

	t.Run("sin compuerta publica", func(t *testing.T) {
		d, err := property.Decide(availableWithImages(5), property.ActionRequestPublish, property.Gates{}, nil)
		require.NoError(t, err)
		assert.True(t, d.To.IsAvailableForSite)
	})

	t.Run("ya publicado es noop", func(t *testing.T) {
		p := availableWithImages(5)
		p.IsAvailableForSite = true
		d, err := property.Decide(p, property.ActionRequestPublish, property.Gates{RequirePublicationApproval: true}, nil)
		require.NoError(t, err)
		assert.True(t, d.Noop)
		assert.Empty(t, d.Enqueue)
	})
}

func TestDecide_UnpublishNuncaBloquea(t *testing.T) {
	p := completeDraft()
	p.IsActive = false
	d, err := property.Decide(p, property.ActionRequestUnpublish, property.Gates{RequirePublicationApproval: true}, nil)
	require.NoError(t, err)
	assert.True(t, d.Noop)

	p.IsAvailableForSite = true
	d, err = property.Decide(p, property.ActionRequestUnpublish, property.Gates{RequirePublicationApproval: true}, nil)
	require.NoError(t, err)
	assert.True(t, d.Applies())
	assert.False(t, d.To.IsAvailableForSite)
}

func TestDecide_MarkSoldDespublicaEnLaMismaTupla(t *testing.T) {
	for _, action := range []property.Action{property.ActionMarkSold, property.ActionMarkRented} {
		t.Run(string(action), func(t *testing.T) {
			p := availableWithImages(5)
			p.IsAvailableForSite = true

			d, err := property.Decide(p, action, property.Gates{}, nil)
			require.NoError(t, err)
			assert.True(t, d.Applies())
			assert.False(t, d.To.IsAvailableForSite)
			assert.NotEqual(t, entity.PropertyStatusAvailable, d.To.Status)
		})
	}
}

func TestDecide_MarkSold(t *testing.T) {
	t.Run("desde borrador no", func(t *testing.T) {
		_, err := property.Decide(completeDraft(), property.ActionMarkSold, property.Gates{}, nil)
		assert.Equal(t, []string{"status must be available"}, domain.ReasonsOf(err))
	})

	t.Run("ya vendido es noop", func(t *testing.T) {
		p := completeDraft()
		p.Status = entity.PropertyStatusSold
		d, err := property.Decide(p, property.ActionMarkSold, property.Gates{}, nil)
		require.NoError(t, err)
		assert.True(t, d.Noop)
	})

	t.Run("vendido publicado se corrige", func(t *testing.T) {
		p := completeDraft()
		p.Status = entity.PropertyStatusSold
		p.IsAvailableForSite = true
		d, err := property.Decide(p, property.ActionMarkSold, property.Gates{}, nil)
		require.NoError(t, err)
		assert.True(t, d.Applies())
		assert.False(t, d.To.IsAvailableForSite)
	})
}

func TestDecide_Maintenance(t *testing.T) {
	p := availableWithImages(5)
	p.IsAvailableForSite = true
	d, err := property.Decide(p, property.ActionMarkMaintenance, property.Gates{}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusMaintenance, d.To.Status)
	assert.False(t, d.To.IsAvailableForSite)

	_, err = property.Decide(completeDraft(), property.ActionMarkMaintenance, property.Gates{}, nil)
	assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))
}

func TestDecide_DesactivarNoDespublica(t *testing.T) {
	p := availableWithImages(5)
	p.IsAvailableForSite = true

	d, err := property.Decide(p, property.ActionDeactivate, property.Gates{}, nil)
	require.NoError(t, err)
	assert.False(t, d.To.IsActive)
	assert.True(t, d.To.IsAvailableForSite)

	d, err = property.Decide(p, property.ActionActivate, property.Gates{}, nil)
	require.NoError(t, err)
	assert.True(t, d.Noop)
}

func TestDecide_InactivoNoPuedePublicar(t *testing.T) {
	p := availableWithImages(5)
	p.IsActive = false
	_, err := property.Decide(p, property.ActionRequestPublish, property.Gates{}, nil)
	assert.Equal(t, []string{"must be active"}, domain.ReasonsOf(err))
}

func TestDecideApproved_Revalida(t *testing.T) {
	p := availableWithImages(5)
	d, err := property.DecideApproved(p, entity.ApprovalKindPublication, nil)
	require.NoError(t, err)
	assert.True(t, d.To.IsAvailableForSite)

	p.IsActive = false
	_, err = property.DecideApproved(p, entity.ApprovalKindPublication, nil)
	assert.True(t, errors.Is(err, domain.ErrIneligibleTransition))

	_, err = property.DecideApproved(p, "OTHER", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecide_AccionDesconocida(t *testing.T) {
	_, err := property.Decide(completeDraft(), property.Action("demolish"), property.Gates{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, property.ValidAction("demolish"))
	assert.True(t, property.ValidAction(property.ActionMarkRented))
}
