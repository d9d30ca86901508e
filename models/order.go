package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"user_id"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	ReceiverName    string      `json:"receiver_name"`
	ReceiverPhone   string      `json:"receiver_phone"`
	TotalAmount     float64     `json:"total_amount"`
	Items           []OrderItem `json:"items,omitempty"`
	OrderDate       time.Time   `json:"order_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderFilter narrows an order listing. Zero values are ignored.
type OrderFilter struct {
	UserID    *int
	Status    OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	// Price is the product price captured when the order was placed.
	Price float64 `json:"price"`
}
