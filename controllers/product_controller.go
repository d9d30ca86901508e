package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// GetProducts godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, limit := paginationParams(c, 12)

	products, meta, err := ctrl.products.GetProducts(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, products, meta)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Returns product detail and counts the view
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product retrieved successfully", product)
}

// SearchProducts godoc
// @Summary Search products
// @Tags Products
// @Produce json
// @Param category query string false "Filter by category"
// @Param brand query string false "Filter by brand"
// @Param name query string false "Filter by name"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/products/search [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	page, limit := paginationParams(c, 12)

	var minPrice, maxPrice *float64
	if v := c.Query("min_price"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			minPrice = &parsed
		}
	}
	if v := c.Query("max_price"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			maxPrice = &parsed
		}
	}

	products, meta, err := ctrl.products.SearchProducts(
		c.Request.Context(),
		c.Query("category"),
		c.Query("brand"),
		c.Query("name"),
		minPrice, maxPrice,
		page, limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, products, meta)
}

// CreateProduct godoc
// @Summary Create product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProductRequest true "Product Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Product created successfully", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductRequest true "Product Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.products.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product updated successfully", product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags Admin - Products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.products.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
