package controllers

import (
	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// GetCart godoc
// @Summary Get current cart
// @Description Returns the caller's cart, creating an empty one on first access
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart retrieved successfully", cart)
}

// AddToCart godoc
// @Summary Add product to cart
// @Description Adds quantity onto the existing line if the product is already in the cart
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddToCartRequest true "Add To Cart Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/add [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	userID := c.GetInt("user_id")
	cart, err := ctrl.carts.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Product added to cart", cart)
}

// UpdateCartItem godoc
// @Summary Update cart item quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart Item ID"
// @Param request body models.UpdateCartItemRequest true "Update Cart Item Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/items/{id} [put]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	userID := c.GetInt("user_id")
	cart, err := ctrl.carts.UpdateItem(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart item updated", cart)
}

// RemoveCartItem godoc
// @Summary Remove item from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart Item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/items/{id} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := c.GetInt("user_id")
	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart item removed", cart)
}

// ClearCart godoc
// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	cart, err := ctrl.carts.ClearCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart cleared", cart)
}
