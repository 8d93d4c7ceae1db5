package orders

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/billing"
	"github.com/jmorgan-io/shop-service/internal/pricing"
	"github.com/jmorgan-io/shop-service/internal/storage"
	"github.com/jmorgan-io/shop-service/internal/validation"
	"github.com/jmorgan-io/shop-service/pkg/models"
)

// EventPublisher receives lifecycle notifications. Publishing is
// best-effort: failures are logged and never fail the operation.
type EventPublisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderStatusChanged(order models.Order, previousStatus string) error
	PublishBillCreated(bill models.Bill, orderID string) error
}

// CreateOrderRequest carries the product references of a new order.
type CreateOrderRequest struct {
	ProductList []string `json:"product_list"`
}

// Service owns the order lifecycle: creation prices the order, status
// updates drive the billing side effect.
type Service struct {
	store     storage.Store
	publisher EventPublisher
	logger    *logrus.Logger
}

func NewService(store storage.Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// SetEventPublisher wires an optional publisher for lifecycle events.
func (s *Service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Create resolves the referenced products, prices the order, and
// persists it in the pending state. Product IDs that match nothing are
// dropped; the request only fails when none of them match.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if len(req.ProductList) == 0 {
		return nil, validation.New("product_list", `"product_list" is required`)
	}

	products, err := s.store.ResolveProducts(ctx, req.ProductList)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &UnknownProductsError{IDs: req.ProductList}
	}

	quote := pricing.Compute(products)

	order := &models.Order{
		ID:             uuid.New().String(),
		Status:         models.OrderStatusPending,
		ShipmentAmount: quote.ShipmentAmount,
		TotalAmount:    quote.TotalAmount,
		TotalWeight:    quote.TotalWeight,
		ProductList:    req.ProductList,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":        order.ID,
		"total_amount":    order.TotalAmount,
		"shipment_amount": order.ShipmentAmount,
		"total_weight":    order.TotalWeight,
		"products":        len(products),
	}).Info("Order created")

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(*order); err != nil {
			s.logger.WithError(err).Error("Failed to publish order created event")
		}
	}

	return order, nil
}

// UpdateStatus moves an order to the requested status. Any status can
// follow any other; the one side effect is that a transition to paid
// records a bill for the order's current total before the status is
// persisted. Repeated paid transitions record a bill each time.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !models.ValidStatus(status) {
		return nil, &InvalidStatusError{Status: status}
	}

	previous := order.Status

	if status == models.OrderStatusPaid {
		bill := billing.NewBill(order.TotalAmount)
		if err := s.store.PayOrder(ctx, id, bill); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"order_id":     id,
			"bill_id":      bill.ID,
			"total_amount": bill.TotalAmount,
		}).Info("Order paid, bill recorded")

		if s.publisher != nil {
			if err := s.publisher.PublishBillCreated(*bill, id); err != nil {
				s.logger.WithError(err).Error("Failed to publish bill created event")
			}
		}
	} else {
		if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"order_id": id,
			"from":     previous,
			"to":       status,
		}).Info("Order status updated")
	}

	order.Status = status

	if s.publisher != nil {
		if err := s.publisher.PublishOrderStatusChanged(*order, previous); err != nil {
			s.logger.WithError(err).Error("Failed to publish order status changed event")
		}
	}

	return order, nil
}

// List returns all orders, optionally sorted by one of the entity
// fields. An unknown sort key leaves the stored order untouched.
func (s *Service) List(ctx context.Context, sortBy string) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	switch sortBy {
	case "status":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].Status < orders[j].Status })
	case "total_amount":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].TotalAmount < orders[j].TotalAmount })
	case "total_weight":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].TotalWeight < orders[j].TotalWeight })
	case "shipment_amount":
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].ShipmentAmount < orders[j].ShipmentAmount })
	}

	return orders, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllOrders(ctx); err != nil {
		return err
	}
	s.logger.Info("All orders deleted")
	return nil
}
