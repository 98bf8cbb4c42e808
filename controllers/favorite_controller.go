package controllers

import (
	"context"
	"net/http"

	"storefront/models"

	"github.com/gin-gonic/gin"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID int, productID *int) (*models.FavoriteToggleResponse, error)
	Remove(ctx context.Context, userID, productID int) error
	List(ctx context.Context, userID int) ([]models.Product, error)
}

type FavoriteController struct {
	favorites FavoriteService
}

func NewFavoriteController(favorites FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

// ToggleFavorite godoc
// @Summary Toggle favorite
// @Description Adds the product to favorites, or removes it when already present
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.FavoriteRequest true "Product"
// @Success 200 {object} models.Response{data=models.FavoriteToggleResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /favorites [post]
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	res, err := ctrl.favorites.Toggle(c.Request.Context(), currentUserID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Favorite "+res.Result, res)
}

// GetFavorites godoc
// @Summary List favorite products
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Product}
// @Router /favorites [get]
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	products, err := ctrl.favorites.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Favorites retrieved", products)
}

// RemoveFavorite godoc
// @Summary Remove favorite
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /favorites/{product_id} [delete]
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	productID, err := paramID(c, "product_id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.favorites.Remove(c.Request.Context(), currentUserID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Favorite removed", nil)
}
