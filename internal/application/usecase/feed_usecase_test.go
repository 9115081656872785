package usecase_test

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/jhoicas/Inmobiliaria-api/internal/application/usecase"
	"github.com/jhoicas/Inmobiliaria-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedUseCase_SoloPublicados(t *testing.T) {
	f := newPlanFixture(t, 0)
	ctx := context.Background()
	published := f.availableProperty(t)
	_, err := f.wf.RequestPublish(ctx, published, f.opts())
	require.NoError(t, err)
	f.availableProperty(t) // disponible pero no publicado

	deactivated := f.availableProperty(t)
	_, err = f.wf.RequestPublish(ctx, deactivated, f.opts())
	require.NoError(t, err)
	_, err = f.wf.Deactivate(ctx, deactivated, f.opts())
	require.NoError(t, err)

	feed := usecase.NewFeedUseCase(f.store.Companies(), f.store.Properties(), "https://www.central.com.br/imoveis/")
	raw, err := feed.Build(ctx, f.companyID)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))
	root := doc.SelectElement("listings")
	require.NotNil(t, root)
	assert.Equal(t, "1", root.SelectAttrValue("count", ""))

	items := root.SelectElements("listing")
	require.Len(t, items, 1)
	assert.Equal(t, published, items[0].SelectAttrValue("id", ""))
	assert.Equal(t,
		"https://www.central.com.br/imoveis/apartamento-consolacao-consolacao-sao-paulo-"+published,
		items[0].SelectElement("url").Text())
	assert.Equal(t, "350000.00", items[0].SelectElement("sale_price").Text())
	assert.Nil(t, items[0].SelectElement("rent_price"))
	images := items[0].SelectElement("images").SelectElements("image")
	require.Len(t, images, 5)
	assert.Equal(t, "true", images[0].SelectAttrValue("main", ""))
}

func TestFeedUseCase_EmpresaInexistente(t *testing.T) {
	f := newPlanFixture(t, 0)
	feed := usecase.NewFeedUseCase(f.store.Companies(), f.store.Properties(), "https://x")
	_, err := feed.Build(context.Background(), companyB)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
