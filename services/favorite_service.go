package services

import (
	"context"

	"storefront/apperror"
	"storefront/models"
)

type FavoriteService struct {
	favorites FavoriteRepository
	products  ProductRepository
	tx        TxRunner
}

func NewFavoriteService(favorites FavoriteRepository, products ProductRepository, tx TxRunner) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products, tx: tx}
}

// Toggle removes the favorite when present and adds it otherwise.
func (s *FavoriteService) Toggle(ctx context.Context, userID int, productID *int) (*models.FavoriteToggleResponse, error) {
	if productID == nil {
		return nil, apperror.Validation("product_id is required")
	}

	resp := &models.FavoriteToggleResponse{}
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.FindByID(ctx, *productID); err != nil {
			return err
		}

		exists, err := s.favorites.Exists(ctx, userID, *productID)
		if err != nil {
			return err
		}
		if exists {
			err = s.favorites.Delete(ctx, userID, *productID)
			resp.Result = models.FavoriteRemoved
		} else {
			err = s.favorites.Create(ctx, userID, *productID)
			resp.Result = models.FavoriteCreated
		}
		if err != nil {
			return err
		}

		resp.ProductIDs, err = s.favorites.ProductIDs(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID int) error {
	return s.favorites.Delete(ctx, userID, productID)
}

func (s *FavoriteService) List(ctx context.Context, userID int) ([]models.Product, error) {
	return s.favorites.Products(ctx, userID)
}
