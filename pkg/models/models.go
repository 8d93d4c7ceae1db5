package models

import (
	"time"
)

// Order statuses. An order starts as pending and moves between statuses
// freely; there is no restriction on source/target pairs.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	ShipmentAmount float64   `json:"shipment_amount"`
	TotalAmount    float64   `json:"total_amount"`
	TotalWeight    float64   `json:"total_weight"`
	ProductList    []string  `json:"product_list"`
	CreatedAt      time.Time `json:"created_at"`
}

type Bill struct {
	ID          string    `json:"id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
