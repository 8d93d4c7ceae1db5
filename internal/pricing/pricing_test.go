package pricing

import (
	"testing"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

func TestComputeShipmentBrackets(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		expected float64
	}{
		{"under 10kg", 8, 25},
		{"exactly on the half step", 15, 50},
		{"20kg", 20, 50},
		{"30kg", 30, 75},
		{"very light order rounds down to zero", 1, 0},
		{"just under the half step", 4.9, 0},
		{"just over the half step", 5.1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compute([]models.Product{{Name: "box", Price: 1, Weight: tt.weight}})
			if q.ShipmentAmount != tt.expected {
				t.Errorf("weight %v: expected shipment %v, got %v", tt.weight, tt.expected, q.ShipmentAmount)
			}
		})
	}
}

func TestComputeSumsAllProducts(t *testing.T) {
	products := []models.Product{
		{Name: "a", Price: 8, Weight: 5},
		{Name: "b", Price: 15, Weight: 1},
		{Name: "c", Price: 24, Weight: 0.3},
	}

	q := Compute(products)

	if q.TotalWeight != 6.3 {
		t.Errorf("expected total weight 6.3, got %v", q.TotalWeight)
	}
	if q.ProductSubtotal != 47 {
		t.Errorf("expected product subtotal 47, got %v", q.ProductSubtotal)
	}
	// Combined weight is under 10, so a single shipment step applies.
	if q.ShipmentAmount != 25 {
		t.Errorf("expected shipment 25, got %v", q.ShipmentAmount)
	}
	if q.TotalAmount != 72 {
		t.Errorf("expected total 72, got %v", q.TotalAmount)
	}
}

func TestComputeAppliesDiscountAboveThreshold(t *testing.T) {
	// Reference case: a 2000-priced product weighing 1 ships for free
	// (round(0.1) = 0) and lands above the threshold, so the 5%
	// discount applies.
	q := Compute([]models.Product{{Name: "tv", Price: 2000, Weight: 1}})

	if q.ShipmentAmount != 0 {
		t.Errorf("expected shipment 0, got %v", q.ShipmentAmount)
	}
	if q.TotalAmount != 1900 {
		t.Errorf("expected discounted total 1900, got %v", q.TotalAmount)
	}
}

func TestComputeNoDiscountAtThreshold(t *testing.T) {
	// Exactly 1000 is not "above" the threshold.
	q := Compute([]models.Product{{Name: "mid", Price: 975, Weight: 8}})

	if q.TotalAmount != 1000 {
		t.Errorf("expected total 1000 with no discount, got %v", q.TotalAmount)
	}
}

func TestComputeDiscountJustAboveThreshold(t *testing.T) {
	q := Compute([]models.Product{{Name: "mid", Price: 976, Weight: 8}})

	expected := 1001 * 0.95
	if q.TotalAmount != expected {
		t.Errorf("expected total %v, got %v", expected, q.TotalAmount)
	}
}

func TestComputeDuplicatesCountIndependently(t *testing.T) {
	p := models.Product{Name: "crate", Price: 10, Weight: 8}

	q := Compute([]models.Product{p, p})

	if q.TotalWeight != 16 {
		t.Errorf("expected total weight 16, got %v", q.TotalWeight)
	}
	// 16kg rounds to 2 shipment steps.
	if q.ShipmentAmount != 50 {
		t.Errorf("expected shipment 50, got %v", q.ShipmentAmount)
	}
	if q.TotalAmount != 70 {
		t.Errorf("expected total 70, got %v", q.TotalAmount)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	products := []models.Product{
		{Name: "a", Price: 120.5, Weight: 3.2},
		{Name: "b", Price: 990, Weight: 14.8},
	}

	first := Compute(products)
	for i := 0; i < 100; i++ {
		if got := Compute(products); got != first {
			t.Fatalf("iteration %d: expected %+v, got %+v", i, first, got)
		}
	}
}
