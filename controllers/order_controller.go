package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder godoc
// @Summary Place order from cart
// @Description Converts the caller's cart into an order with prices frozen at order time
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Create Order Request"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	userID := c.GetInt("user_id")
	order, err := ctrl.orders.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Order placed successfully", order)
}

// GetOrders godoc
// @Summary List own orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	page, limit := paginationParams(c, 10)
	userID := c.GetInt("user_id")

	orders, meta, err := ctrl.orders.GetUserOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, orders, meta)
}

// GetOrderByID godoc
// @Summary Get order by ID
// @Description Owners see their own orders; admins see any order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := c.GetInt("user_id")
	isAdmin := c.GetString("user_role") == models.RoleAdmin

	order, err := ctrl.orders.GetOrder(c.Request.Context(), userID, isAdmin, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Order retrieved successfully", order)
}

// CancelOrder godoc
// @Summary Cancel own pending order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /api/orders/{id}/cancel [put]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := c.GetInt("user_id")
	order, err := ctrl.orders.CancelOrder(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Order cancelled", order)
}

// GetAllOrders godoc
// @Summary List all orders
// @Description List orders across all users with filters (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status"
// @Param start_date query string false "Created from (RFC3339)"
// @Param end_date query string false "Created until (RFC3339)"
// @Param search query string false "Search by receiver name or order ID"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/orders/all [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := paginationParams(c, 10)

	filter := models.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondBadRequest(c, "Invalid start_date, expected RFC3339", err)
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondBadRequest(c, "Invalid end_date, expected RFC3339", err)
			return
		}
		filter.EndDate = &t
	}

	orders, meta, err := ctrl.orders.GetAllOrders(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, orders, meta)
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Set any known status on an order (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Update Order Status Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/orders/{id}/status [put]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	order, err := ctrl.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Order status updated", order)
}
