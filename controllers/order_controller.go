package controllers

import (
	"context"
	"net/http"

	"storefront/models"

	"github.com/gin-gonic/gin"
)

type OrderService interface {
	List(ctx context.Context, userID int) ([]models.Order, error)
	Get(ctx context.Context, userID, id int) (*models.Order, error)
	AdvanceCheckoutStatus(ctx context.Context, userID, checkoutID int, status models.CheckoutStatus) (*models.Checkout, error)
}

type OrderController struct {
	orders OrderService
}

func NewOrderController(orders OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// GetOrders godoc
// @Summary List own orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.orders.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Orders retrieved", orders)
}

// GetOrderByID godoc
// @Summary Get own order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := ctrl.orders.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved", order)
}

// UpdateCheckoutStatus godoc
// @Summary Advance checkout status
// @Description Status only moves forward: pending, received, completed
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Checkout ID"
// @Param request body models.UpdateCheckoutStatusRequest true "New status"
// @Success 200 {object} models.Response{data=models.Checkout}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /checkouts/{id}/status [patch]
func (ctrl *OrderController) UpdateCheckoutStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateCheckoutStatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	checkout, err := ctrl.orders.AdvanceCheckoutStatus(c.Request.Context(), currentUserID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Checkout status updated", checkout)
}
