package services

import (
	"context"
	"testing"

	"storefront/apperror"
	"storefront/models"
	"storefront/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavoriteRoundTrip(t *testing.T) {
	store := testkit.NewStore()
	a := store.AddProduct(models.Product{Name: "A"})
	b := store.AddProduct(models.Product{Name: "B"})
	svc := NewFavoriteService(store.Favorites(), store.Products(), store)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, &a.ID)
	require.NoError(t, err)
	before, err := store.Favorites().ProductIDs(ctx, 1)
	require.NoError(t, err)

	resp, err := svc.Toggle(ctx, 1, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FavoriteCreated, resp.Result)
	assert.Equal(t, []int{a.ID, b.ID}, resp.ProductIDs)

	resp, err = svc.Toggle(ctx, 1, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FavoriteRemoved, resp.Result)
	assert.Equal(t, before, resp.ProductIDs)
}

func TestToggleFavoriteValidation(t *testing.T) {
	store := testkit.NewStore()
	svc := NewFavoriteService(store.Favorites(), store.Products(), store)

	_, err := svc.Toggle(context.Background(), 1, nil)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	missing := 42
	_, err = svc.Toggle(context.Background(), 1, &missing)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRemoveMissingFavoriteIsNotFound(t *testing.T) {
	store := testkit.NewStore()
	a := store.AddProduct(models.Product{Name: "A"})
	svc := NewFavoriteService(store.Favorites(), store.Products(), store)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, &a.ID)
	require.NoError(t, err)

	err = svc.Remove(ctx, 1, a.ID+1)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	products, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].Name)
}
