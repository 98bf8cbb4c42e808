package controllers

import (
	"context"
	"io"
	"net/http"

	"storefront/apperror"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 65536

type CheckoutService interface {
	CreateSession(ctx context.Context, userID int, shipping models.ShippingAddress) (*models.CheckoutSessionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*models.Order, error)
}

type CheckoutController struct {
	checkout CheckoutService
}

func NewCheckoutController(checkout CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// CreateCheckoutSession godoc
// @Summary Start checkout
// @Description Creates a hosted payment session for the caller's cart. The shipping body is optional.
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CheckoutSessionRequest false "Shipping address"
// @Success 200 {object} models.Response{data=models.CheckoutSessionResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /create-checkout-session [post]
func (ctrl *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutSessionRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
	}

	res, err := ctrl.checkout.CreateSession(c.Request.Context(), currentUserID(c), req.Shipping())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Checkout session created", res)
}

// StripeWebhook godoc
// @Summary Payment webhook
// @Description Receives signed payment notifications. A completed session records the order.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /webhooks/stripe [post]
func (ctrl *CheckoutController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		respondError(c, apperror.Validation("unable to read webhook body"))
		return
	}

	order, err := ctrl.checkout.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		respondError(c, err)
		return
	}

	if order == nil {
		respondOK(c, http.StatusOK, "Event ignored", nil)
		return
	}
	respondOK(c, http.StatusOK, "Payment confirmed", gin.H{"order_id": order.ID})
}
