package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"storefront/apperror"
	"storefront/models"
	"storefront/testkit"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newProductRequest(name, price string) models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:        name,
		Description: "a product",
		Brand:       "acme",
		Type:        "shoes",
		Price:       decPtr(price),
		Stock:       intPtr(10),
	}
}

func TestCreateProductStoresMinorUnits(t *testing.T) {
	store := testkit.NewStore()
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)

	p, err := svc.Create(context.Background(), 7, newProductRequest("Runner", "19.99"))
	require.NoError(t, err)

	assert.Equal(t, int64(1999), p.PriceCents)
	require.NotNil(t, p.UserID)
	assert.Equal(t, 7, *p.UserID)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	store := testkit.NewStore()
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)

	_, err := svc.Create(context.Background(), 7, newProductRequest("Runner", "-1"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreateProductRejectsOversizedPrice(t *testing.T) {
	store := testkit.NewStore()
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)

	_, err := svc.Create(context.Background(), 7, newProductRequest("Runner", "200000000000000000"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, models.ErrPriceTooLarge.Error(), apperror.MessageOf(err))
}

func TestCreateProductDuplicateNameIsConflict(t *testing.T) {
	store := testkit.NewStore()
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, newProductRequest("Runner", "10"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, 8, newProductRequest("Runner", "12"))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestUpdateProductOwnerRule(t *testing.T) {
	store := testkit.NewStore()
	seller := 7
	owned := store.AddProduct(models.Product{Name: "Owned", PriceCents: 100, UserID: &seller})
	shared := store.AddProduct(models.Product{Name: "Shared", PriceCents: 100})
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)
	ctx := context.Background()

	_, err := svc.Update(ctx, 8, owned.ID, models.UpdateProductRequest{Stock: intPtr(1)})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	updated, err := svc.Update(ctx, 8, shared.ID, models.UpdateProductRequest{Price: decPtr("2.50")})
	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.PriceCents)
	assert.Equal(t, "Shared", updated.Name)

	updated, err = svc.Update(ctx, seller, owned.ID, models.UpdateProductRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateProductValidation(t *testing.T) {
	store := testkit.NewStore()
	p := store.AddProduct(models.Product{Name: "Shared"})
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)
	ctx := context.Background()

	_, err := svc.Update(ctx, 1, p.ID, models.UpdateProductRequest{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Update(ctx, 1, p.ID+100, models.UpdateProductRequest{Stock: intPtr(1)})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteProduct(t *testing.T) {
	store := testkit.NewStore()
	seller := 7
	p := store.AddProduct(models.Product{Name: "Owned", UserID: &seller})
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)
	ctx := context.Background()

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(svc.Delete(ctx, 8, p.ID)))
	require.NoError(t, svc.Delete(ctx, seller, p.ID))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(svc.Delete(ctx, seller, p.ID)))
}

func TestGetAllProductsPaginates(t *testing.T) {
	store := testkit.NewStore()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		store.AddProduct(models.Product{Name: name, Brand: "acme"})
	}
	store.AddProduct(models.Product{Name: "other", Brand: "zeta"})
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)

	products, meta, err := svc.GetAll(context.Background(), models.ProductFilter{Brand: "ACME", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, models.PaginationMeta{Page: 2, Limit: 2, TotalItems: 5, TotalPages: 3}, meta)

	_, meta, err = svc.GetAll(context.Background(), models.ProductFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, maxPageLimit, meta.Limit)
}

func TestImportSkipsExistingNames(t *testing.T) {
	store := testkit.NewStore()
	store.AddProduct(models.Product{Name: "Runner"})
	svc := NewProductService(store.Products(), &testkit.ImageStore{}, store)

	created, skipped, err := svc.Import(context.Background(), []models.CreateProductRequest{
		newProductRequest("Runner", "10"),
		newProductRequest("Walker", "0.29"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)

	walker, err := store.Products().FindByName(context.Background(), "Walker")
	require.NoError(t, err)
	assert.Equal(t, int64(29), walker.PriceCents)
	assert.Nil(t, walker.UserID)
}

func TestUploadImage(t *testing.T) {
	store := testkit.NewStore()
	seller := 7
	p := store.AddProduct(models.Product{Name: "Owned", UserID: &seller})
	images := &testkit.ImageStore{URL: "https://cdn.example.com/p.png"}
	svc := NewProductService(store.Products(), images, store)
	ctx := context.Background()
	file := &multipart.FileHeader{Filename: "p.png", Size: 10}

	_, err := svc.UploadImage(ctx, 8, p.ID, file)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.Empty(t, images.Saved)

	updated, err := svc.UploadImage(ctx, seller, p.ID, file)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/p.png", updated.Img)
	assert.Equal(t, []string{"products/p.png"}, images.Saved)
}

func TestUploadImageStorageFailureLeavesProduct(t *testing.T) {
	store := testkit.NewStore()
	p := store.AddProduct(models.Product{Name: "Shared", Img: "old.png"})
	images := &testkit.ImageStore{Err: apperror.External("image upload failed", errors.New("timeout"))}
	svc := NewProductService(store.Products(), images, store)

	_, err := svc.UploadImage(context.Background(), 1, p.ID, &multipart.FileHeader{Filename: "p.png"})
	assert.Equal(t, apperror.KindExternalService, apperror.KindOf(err))

	stored, err := store.Products().FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "old.png", stored.Img)
}
