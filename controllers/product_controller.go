package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"storefront/apperror"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

type ProductService interface {
	Create(ctx context.Context, userID int, req models.CreateProductRequest) (*models.Product, error)
	GetAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, models.PaginationMeta, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Update(ctx context.Context, userID, id int, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, userID, id int) error
	UploadImage(ctx context.Context, userID, id int, file *multipart.FileHeader) (*models.Product, error)
}

type ProductController struct {
	products ProductService
}

func NewProductController(products ProductService) *ProductController {
	return &ProductController{products: products}
}

// GetAllProducts godoc
// @Summary List products
// @Description Paginated catalog with optional brand, type and text filters
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param brand query string false "Filter by brand"
// @Param type query string false "Filter by type"
// @Param search query string false "Search name and description"
// @Success 200 {object} models.PaginationResponse{data=[]models.Product}
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, meta, err := ctrl.products.GetAll(c.Request.Context(), models.ProductFilter{
		Brand:  c.Query("brand"),
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta:    meta,
	})
}

// GetProductByID godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := ctrl.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product retrieved", product)
}

// CreateProduct godoc
// @Summary Create product
// @Description The caller becomes the product's seller
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	product, err := ctrl.products.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Product created", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.UpdateProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	product, err := ctrl.products.Update(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.products.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Product deleted", nil)
}

// UploadProductImage godoc
// @Summary Upload product image
// @Tags Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperror.Validation("image file is required"))
		return
	}

	product, err := ctrl.products.UploadImage(c.Request.Context(), currentUserID(c), id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Image uploaded", product)
}
