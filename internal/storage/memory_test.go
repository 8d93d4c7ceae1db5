package storage

import (
	"context"
	"testing"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

func TestMemoryProductRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	product := &models.Product{ID: "p1", Name: "lamp", Price: 40, Weight: 2}
	if err := store.CreateProduct(ctx, product); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "lamp" || got.Price != 40 {
		t.Errorf("unexpected product: %+v", got)
	}

	if _, err := store.GetProduct(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryResolveProductsSkipsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.CreateProduct(ctx, &models.Product{ID: "p1", Name: "a"})
	store.CreateProduct(ctx, &models.Product{ID: "p2", Name: "b"})

	resolved, err := store.ResolveProducts(ctx, []string{"p2", "ghost"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != "p2" {
		t.Errorf("expected only p2, got %+v", resolved)
	}
}

func TestMemoryListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for _, id := range []string{"p1", "p2", "p3"} {
		store.CreateProduct(ctx, &models.Product{ID: id})
	}

	products, err := store.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, id := range []string{"p1", "p2", "p3"} {
		if products[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, products[i].ID)
		}
	}
}

func TestMemoryUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.CreateOrder(ctx, &models.Order{ID: "o1", Status: models.OrderStatusPending})

	if err := store.UpdateOrderStatus(ctx, "o1", models.OrderStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order, _ := store.GetOrder(ctx, "o1")
	if order.Status != models.OrderStatusCancelled {
		t.Errorf("expected cancelled, got %s", order.Status)
	}

	if err := store.UpdateOrderStatus(ctx, "nope", models.OrderStatusPaid); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryPayOrderWritesBillAndStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.CreateOrder(ctx, &models.Order{ID: "o1", Status: models.OrderStatusPending, TotalAmount: 120})

	bill := &models.Bill{ID: "b1", TotalAmount: 120}
	if err := store.PayOrder(ctx, "o1", bill); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, _ := store.GetOrder(ctx, "o1")
	if order.Status != models.OrderStatusPaid {
		t.Errorf("expected paid, got %s", order.Status)
	}
	bills, _ := store.ListBills(ctx)
	if len(bills) != 1 || bills[0].TotalAmount != 120 {
		t.Errorf("unexpected bills: %+v", bills)
	}
}

func TestMemoryPayOrderMissingOrderLeavesNoBill(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	err := store.PayOrder(ctx, "ghost", &models.Bill{ID: "b1", TotalAmount: 10})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	bills, _ := store.ListBills(ctx)
	if len(bills) != 0 {
		t.Errorf("expected no bills, got %+v", bills)
	}
}

func TestMemoryDeleteAllIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	// Deleting from empty collections must not error.
	if err := store.DeleteAllProducts(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := store.DeleteAllOrders(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := store.DeleteAllBills(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	store.CreateProduct(ctx, &models.Product{ID: "p1"})
	store.CreateOrder(ctx, &models.Order{ID: "o1"})
	store.CreateBill(ctx, &models.Bill{ID: "b1"})

	store.DeleteAllProducts(ctx)
	store.DeleteAllOrders(ctx)
	store.DeleteAllBills(ctx)

	products, _ := store.ListProducts(ctx)
	orders, _ := store.ListOrders(ctx)
	bills, _ := store.ListBills(ctx)
	if len(products)+len(orders)+len(bills) != 0 {
		t.Errorf("expected all collections empty, got %d/%d/%d",
			len(products), len(orders), len(bills))
	}
}

func TestMemoryOrderIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	original := &models.Order{ID: "o1", ProductList: []string{"p1"}}
	store.CreateOrder(ctx, original)

	// Mutating the caller's slice must not reach the stored record.
	original.ProductList[0] = "tampered"

	order, _ := store.GetOrder(ctx, "o1")
	if order.ProductList[0] != "p1" {
		t.Errorf("stored order shares memory with caller: %+v", order)
	}
}
