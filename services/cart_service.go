package services

import (
	"context"
	"fmt"

	"storefront/apperror"
	"storefront/models"

	"github.com/google/uuid"
)

type CartService struct {
	carts    CartRepository
	products ProductRepository
	tx       TxRunner
}

func NewCartService(carts CartRepository, products ProductRepository, tx TxRunner) *CartService {
	return &CartService{carts: carts, products: products, tx: tx}
}

// Add increments the (user, product) quantity, creating the row on first
// add. A missing quantity means 1. The summed quantity is bounded by the
// store, which rejects totals above models.MaxCartQuantity.
func (s *CartService) Add(ctx context.Context, userID int, req models.AddToCartRequest) (*models.CartItem, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	if req.ProductID == nil {
		return nil, apperror.Validation("product_id is required")
	}

	var item *models.CartItem
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.products.FindByID(ctx, *req.ProductID); err != nil {
			return err
		}
		var err error
		item, err = s.carts.AddQuantity(ctx, userID, *req.ProductID, quantity, uuid.NewString())
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID int, quantity *int) (*models.CartItem, error) {
	if quantity == nil {
		return nil, apperror.Validation("quantity is required")
	}
	if err := checkQuantity(*quantity); err != nil {
		return nil, err
	}
	return s.carts.SetQuantity(ctx, userID, productID, *quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, productID int) error {
	return s.carts.Delete(ctx, userID, productID)
}

// List prices every line at the product's current catalog price.
func (s *CartService) List(ctx context.Context, userID int) (*models.Cart, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if !lines[i].Available {
			lines[i].ProductName = "Unknown product"
		}
	}
	cart := models.NewCart(lines)
	return &cart, nil
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return apperror.Validation("quantity must be a positive integer")
	}
	if quantity > models.MaxCartQuantity {
		return apperror.Validation(fmt.Sprintf("quantity must not exceed %d", models.MaxCartQuantity))
	}
	return nil
}
