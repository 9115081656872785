package approval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inmobiliaria-api/internal/application/approval"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain/entity"
)

func ids(list []*entity.PendingProperty) []string {
	out := make([]string, 0, len(list))
	for _, pp := range list {
		out = append(out, pp.Property.ID)
	}
	return out
}

func TestListPendingFor_Orden(t *testing.T) {
	f := newFixture(t)
	f.gates(t, false, true)
	ctx := context.Background()
	// Creados p1, p2, p3; solicitados en orden inverso.
	for _, id := range []string{"p1", "p2", "p3"} {
		f.seed(t, id, available)
	}
	for _, id := range []string{"p3", "p2", "p1"} {
		_, err := f.wf.RequestPublish(ctx, id, opts())
		require.NoError(t, err)
	}

	list, err := f.queue.ListPendingFor(ctx, companyID, entity.ApprovalKindPublication, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(list), "por defecto created_at desc")

	list, err = f.queue.ListPendingFor(ctx, companyID, entity.ApprovalKindPublication, "created_at", "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(list))

	list, err = f.queue.ListPendingFor(ctx, companyID, entity.ApprovalKindPublication, "publication_requested_at", "asc")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(list))
	for _, pp := range list {
		assert.True(t, pp.Property.HasPendingPublicationApproval)
		assert.Equal(t, entity.ApprovalStatusPending, pp.Request.Status)
	}

	list, err = f.queue.ListPendingFor(ctx, companyID, entity.ApprovalKindAvailability, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.queue.ListPendingFor(ctx, "company-2", entity.ApprovalKindPublication, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListPendingFor_Validacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name, kind, sortBy, order string
	}{
		{"tipo desconocido", "RENT", "", ""},
		{"campo de orden desconocido", entity.ApprovalKindPublication, "price", ""},
		{"alias solo en publicacion", entity.ApprovalKindAvailability, "publication_requested_at", ""},
		{"direccion invalida", entity.ApprovalKindAvailability, "created_at", "sideways"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.queue.ListPendingFor(ctx, companyID, tc.kind, tc.sortBy, tc.order)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}

	_, err := f.queue.ListPendingFor(ctx, "", entity.ApprovalKindPublication, "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListMine(t *testing.T) {
	f := newFixture(t)
	f.gates(t, true, true)
	ctx := context.Background()
	f.seed(t, "draft-1")
	f.seed(t, "avail-1", available)
	f.seed(t, "avail-2", available)

	_, err := f.wf.RequestAvailable(ctx, "draft-1", opts())
	require.NoError(t, err)
	_, err = f.wf.RequestPublish(ctx, "avail-1", opts())
	require.NoError(t, err)
	other := opts()
	other.UserID = "user-otro"
	_, err = f.wf.RequestPublish(ctx, "avail-2", other)
	require.NoError(t, err)

	mine, err := f.queue.ListMine(ctx, companyID, corretor)
	require.NoError(t, err)
	assert.Equal(t, []string{"draft-1"}, ids(mine.PendingAvailability))
	assert.Equal(t, []string{"avail-1"}, ids(mine.PendingPublication))

	none, err := f.queue.ListMine(ctx, companyID, "user-sin-solicitudes")
	require.NoError(t, err)
	assert.Empty(t, none.PendingAvailability)
	assert.Empty(t, none.PendingPublication)

	_, err = f.queue.ListMine(ctx, companyID, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestResolve(t *testing.T) {
	f := newFixture(t)
	f.gates(t, false, true)
	f.seed(t, "p1", available)
	f.seed(t, "p2", available)
	ctx := context.Background()

	r1, err := f.wf.RequestPublish(ctx, "p1", opts())
	require.NoError(t, err)
	r2, err := f.wf.RequestPublish(ctx, "p2", opts())
	require.NoError(t, err)

	_, err = f.queue.Resolve(ctx, r1.Request.ID, "maybe", approval.ResolveOptions{CompanyID: companyID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	approved, err := f.queue.Resolve(ctx, r1.Request.ID, approval.DecisionApprove, approval.ResolveOptions{CompanyID: companyID, UserID: gestor})
	require.NoError(t, err)
	assert.True(t, approved.Property.IsAvailableForSite)

	_, err = f.queue.Resolve(ctx, r2.Request.ID, approval.DecisionReject, approval.ResolveOptions{CompanyID: companyID, UserID: gestor})
	assert.True(t, errors.Is(err, domain.ErrInvalidRejection))

	rejected, err := f.queue.Resolve(ctx, r2.Request.ID, approval.DecisionReject, approval.ResolveOptions{
		CompanyID: companyID, UserID: gestor, Reason: "endereço divergente",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalStatusRejected, rejected.Request.Status)

	list, err := f.queue.ListPendingFor(ctx, companyID, entity.ApprovalKindPublication, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
