package services

import (
	"context"
	"mime/multipart"
	"strings"

	"storefront/apperror"
	"storefront/logger"
	"storefront/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type ProductService struct {
	products ProductRepository
	images   ImageStore
	tx       TxRunner
}

func NewProductService(products ProductRepository, images ImageStore, tx TxRunner) *ProductService {
	return &ProductService{products: products, images: images, tx: tx}
}

func (s *ProductService) Create(ctx context.Context, userID int, req models.CreateProductRequest) (*models.Product, error) {
	priceCents, err := models.DecimalToCents(*req.Price)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Img:         req.Img,
		Brand:       req.Brand,
		Type:        req.Type,
		PriceCents:  priceCents,
		Stock:       *req.Stock,
		UserID:      &userID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product created", "product_id", product.ID, "user_id", userID)
	return product, nil
}

// Import inserts catalog products without a seller, skipping names that
// already exist.
func (s *ProductService) Import(ctx context.Context, reqs []models.CreateProductRequest) (created, skipped int, err error) {
	for _, req := range reqs {
		if req.Price == nil || req.Stock == nil || strings.TrimSpace(req.Name) == "" {
			return created, skipped, apperror.Validation("product " + req.Name + " is missing name, price or stock")
		}
		priceCents, err := models.DecimalToCents(*req.Price)
		if err != nil {
			return created, skipped, apperror.Validation(req.Name + ": " + err.Error())
		}

		_, err = s.products.FindByName(ctx, strings.TrimSpace(req.Name))
		if err == nil {
			skipped++
			continue
		}
		if !apperror.Is(err, apperror.KindNotFound) {
			return created, skipped, err
		}

		product := &models.Product{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Img:         req.Img,
			Brand:       req.Brand,
			Type:        req.Type,
			PriceCents:  priceCents,
			Stock:       *req.Stock,
		}
		if err := s.products.Create(ctx, product); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

func (s *ProductService) GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, models.PaginationMeta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	filter.Search = strings.TrimSpace(filter.Search)

	products, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}
	return products, models.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *ProductService) GetByID(ctx context.Context, id int) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

// loadOwned fetches the product and checks that userID may modify it.
func (s *ProductService) loadOwned(ctx context.Context, userID, id int) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(userID) {
		return nil, apperror.Forbidden("you can only modify your own products")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, userID, id int, req models.UpdateProductRequest) (*models.Product, error) {
	if req.Empty() {
		return nil, apperror.Validation("at least one field is required")
	}

	var priceCents int64
	if req.Price != nil {
		cents, err := models.DecimalToCents(*req.Price)
		if err != nil {
			return nil, apperror.Validation(err.Error())
		}
		priceCents = cents
	}

	var product *models.Product
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.loadOwned(ctx, userID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			product.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Img != nil {
			product.Img = *req.Img
		}
		if req.Brand != nil {
			product.Brand = *req.Brand
		}
		if req.Type != nil {
			product.Type = *req.Type
		}
		if req.Price != nil {
			product.PriceCents = priceCents
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}

		return s.products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, userID, id int) error {
	return s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.loadOwned(ctx, userID, id); err != nil {
			return err
		}
		return s.products.Delete(ctx, id)
	})
}

// UploadImage stores the file before touching the row, so a storage failure
// leaves the product unchanged.
func (s *ProductService) UploadImage(ctx context.Context, userID, id int, file *multipart.FileHeader) (*models.Product, error) {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, file, "products")
	if err != nil {
		return nil, err
	}

	var product *models.Product
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.loadOwned(ctx, userID, id)
		if err != nil {
			return err
		}
		product.Img = url
		return s.products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("product image updated", "product_id", id)
	return product, nil
}
