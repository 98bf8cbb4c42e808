package services

import (
	"context"

	"storefront/apperror"
	"storefront/models"
)

type OrderService struct {
	orders OrderRepository
	tx     TxRunner
}

func NewOrderService(orders OrderRepository, tx TxRunner) *OrderService {
	return &OrderService{orders: orders, tx: tx}
}

func (s *OrderService) List(ctx context.Context, userID int) ([]models.Order, error) {
	return s.orders.FindOrdersByUser(ctx, userID)
}

// Get hides other users' orders behind NotFound.
func (s *OrderService) Get(ctx context.Context, userID, id int) (*models.Order, error) {
	order, err := s.orders.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperror.NotFound("order not found")
	}
	return order, nil
}

// AdvanceCheckoutStatus moves a checkout forward through pending, received,
// completed. Going backwards or repeating the current status is rejected.
func (s *OrderService) AdvanceCheckoutStatus(ctx context.Context, userID, checkoutID int, status models.CheckoutStatus) (*models.Checkout, error) {
	if !status.Valid() {
		return nil, apperror.Validation("status must be one of pending, received, completed")
	}

	var checkout *models.Checkout
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		checkout, err = s.orders.FindCheckoutByID(ctx, checkoutID)
		if err != nil {
			return err
		}
		if checkout.UserID != userID {
			return apperror.NotFound("checkout not found")
		}
		if !checkout.Status.CanTransitionTo(status) {
			return apperror.InvalidState("cannot move checkout from " + string(checkout.Status) + " to " + string(status))
		}
		if err := s.orders.UpdateCheckoutStatus(ctx, checkoutID, status); err != nil {
			return err
		}
		checkout.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checkout, nil
}
