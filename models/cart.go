package models

import "time"

type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ID           int       `json:"id"`
	CartID       int       `json:"cart_id"`
	ProductID    int       `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductPrice float64   `json:"product_price,omitempty"`
	ProductImage string    `json:"product_image,omitempty"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
