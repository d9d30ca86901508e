package models

import "time"

type Product struct {
	ID                  int       `json:"id"`
	Name                string    `json:"name"`
	Price               float64   `json:"price"`
	Brand               string    `json:"brand"`
	Category            string    `json:"category"`
	Views               int64     `json:"views"`
	SoldQuantity        int64     `json:"sold_quantity"`
	ShortDescription    string    `json:"short_description"`
	DetailedDescription string    `json:"detailed_description"`
	Images              []string  `json:"images"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
