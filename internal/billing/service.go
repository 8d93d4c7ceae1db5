package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/storage"
	"github.com/jmorgan-io/shop-service/pkg/models"
)

// NewBill builds a ledger entry for the given amount. The amount is
// taken as supplied; the ledger does not second-guess the caller.
func NewBill(amount float64) *models.Bill {
	return &models.Bill{
		ID:          uuid.New().String(),
		TotalAmount: amount,
		CreatedAt:   time.Now().UTC(),
	}
}

// Service owns the append-only bill ledger.
type Service struct {
	store  storage.BillStore
	logger *logrus.Logger
}

func NewService(store storage.BillStore, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Create(ctx context.Context, amount float64) (*models.Bill, error) {
	bill := NewBill(amount)
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"bill_id":      bill.ID,
		"total_amount": bill.TotalAmount,
	}).Info("Bill created")

	return bill, nil
}

func (s *Service) List(ctx context.Context) ([]models.Bill, error) {
	return s.store.ListBills(ctx)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllBills(ctx); err != nil {
		return err
	}
	s.logger.Info("All bills deleted")
	return nil
}
