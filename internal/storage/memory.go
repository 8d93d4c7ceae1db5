package storage

import (
	"context"
	"sync"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

// Memory is an in-process Store. It backs local runs and tests; records
// are kept in insertion order so listings are stable.
type Memory struct {
	mutex    sync.RWMutex
	products []models.Product
	orders   []models.Order
	bills    []models.Bill
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.products = append(m.products, *product)
	return nil
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]models.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *Memory) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ResolveProducts(ctx context.Context, ids []string) ([]models.Product, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var out []models.Product
	for _, p := range m.products {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) DeleteAllProducts(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.products = nil
	return nil
}

func (m *Memory) CreateOrder(ctx context.Context, order *models.Order) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.orders = append(m.orders, cloneOrder(order))
	return nil
}

func (m *Memory) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]models.Order, 0, len(m.orders))
	for i := range m.orders {
		out = append(out, cloneOrder(&m.orders[i]))
	}
	return out, nil
}

func (m *Memory) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			o := cloneOrder(&m.orders[i])
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateOrderStatus(ctx context.Context, id, status string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.setStatus(id, status)
}

func (m *Memory) PayOrder(ctx context.Context, id string, bill *models.Bill) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// The status write is attempted first so a missing order leaves no
	// orphaned bill behind.
	if err := m.setStatus(id, models.OrderStatusPaid); err != nil {
		return err
	}
	m.bills = append(m.bills, *bill)
	return nil
}

func (m *Memory) setStatus(id, status string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) DeleteAllOrders(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.orders = nil
	return nil
}

func (m *Memory) CreateBill(ctx context.Context, bill *models.Bill) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.bills = append(m.bills, *bill)
	return nil
}

func (m *Memory) ListBills(ctx context.Context) ([]models.Bill, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]models.Bill, len(m.bills))
	copy(out, m.bills)
	return out, nil
}

func (m *Memory) DeleteAllBills(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.bills = nil
	return nil
}

func cloneOrder(o *models.Order) models.Order {
	out := *o
	out.ProductList = make([]string, len(o.ProductList))
	copy(out.ProductList, o.ProductList)
	return out
}
