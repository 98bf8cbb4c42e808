package controllers

import (
	"context"
	"net/http"

	"storefront/models"

	"github.com/gin-gonic/gin"
)

type CartService interface {
	Add(ctx context.Context, userID int, req models.AddToCartRequest) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID int, quantity *int) (*models.CartItem, error)
	Remove(ctx context.Context, userID, productID int) error
	List(ctx context.Context, userID int) (*models.Cart, error)
}

type CartController struct {
	carts CartService
}

func NewCartController(carts CartService) *CartController {
	return &CartController{carts: carts}
}

// GetCart godoc
// @Summary Get shopping cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.Cart}
// @Router /shopping-cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Shopping cart retrieved", cart)
}

// AddToCart godoc
// @Summary Add product to cart
// @Description Adds quantity (default 1) to the existing line or creates one
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Cart item"
// @Success 200 {object} models.Response{data=models.CartItem}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shopping-cart [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	item, err := ctrl.carts.Add(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product added to cart", item)
}

// UpdateCartItem godoc
// @Summary Set cart item quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param request body models.UpdateCartRequest true "Quantity"
// @Success 200 {object} models.Response{data=models.CartItem}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shopping-cart/{product_id} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	productID, err := paramID(c, "product_id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateCartRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	item, err := ctrl.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item updated", item)
}

// RemoveCartItem godoc
// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /shopping-cart/{product_id} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	productID, err := paramID(c, "product_id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.carts.Remove(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item removed", nil)
}
