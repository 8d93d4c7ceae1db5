package billing

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jmorgan-io/shop-service/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return NewService(storage.NewMemory(), logger)
}

func TestNewBillCarriesTheAmountAsSupplied(t *testing.T) {
	bill := NewBill(1923.75)

	if bill.TotalAmount != 1923.75 {
		t.Errorf("expected amount 1923.75, got %v", bill.TotalAmount)
	}
	if bill.ID == "" {
		t.Error("expected a generated bill ID")
	}
}

func TestLedgerIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	for _, amount := range []float64{10, 20, 10} {
		if _, err := service.Create(ctx, amount); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	bills, err := service.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("expected 3 bills, got %d", len(bills))
	}
	// Duplicated amounts are distinct entries.
	if bills[0].ID == bills[2].ID {
		t.Error("expected distinct bill IDs")
	}
}

func TestDeleteAllBills(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	service.Create(ctx, 42)

	if err := service.DeleteAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.DeleteAll(ctx); err != nil {
		t.Fatalf("unexpected error on empty delete: %v", err)
	}

	bills, _ := service.List(ctx)
	if len(bills) != 0 {
		t.Errorf("expected empty ledger, got %d", len(bills))
	}
}
