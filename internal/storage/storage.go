package storage

import (
	"context"
	"errors"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

// ErrNotFound is returned when a record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// ProductStore owns product records.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	// ResolveProducts returns the products whose IDs appear in ids.
	// Unknown IDs are skipped, not reported.
	ResolveProducts(ctx context.Context, ids []string) ([]models.Product, error)
	DeleteAllProducts(ctx context.Context) error
}

// OrderStore owns order records.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	// PayOrder records a bill and marks the order paid as a single
	// storage operation, so a bill never exists without the matching
	// status write.
	PayOrder(ctx context.Context, id string, bill *models.Bill) error
	DeleteAllOrders(ctx context.Context) error
}

// BillStore owns the append-only bill ledger.
type BillStore interface {
	CreateBill(ctx context.Context, bill *models.Bill) error
	ListBills(ctx context.Context) ([]models.Bill, error)
	DeleteAllBills(ctx context.Context) error
}

// Store is the full persistence surface of the service.
type Store interface {
	ProductStore
	OrderStore
	BillStore
}
