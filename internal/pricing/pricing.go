package pricing

import (
	"math"

	"github.com/jmorgan-io/shop-service/pkg/models"
)

// Shipment cost grows by ShipmentPriceStep for every ShipmentWeightStep
// of total order weight, rounded to the nearest step (half away from
// zero): weight 8 ships for 25, weight 15 for 50, weight 20 for 50.
const (
	ShipmentPriceStep  = 25.0
	ShipmentWeightStep = 10.0

	DiscountThreshold = 1000.0
	DiscountRatio     = 0.95
)

// Quote is the priced breakdown of a set of products.
type Quote struct {
	TotalWeight     float64
	ProductSubtotal float64
	ShipmentAmount  float64
	TotalAmount     float64
}

// Compute prices an order from its resolved products. Duplicates each
// contribute independently. The caller must not pass an empty set; an
// empty order is rejected before pricing runs.
//
// Compute is a pure function: no side effects, identical input yields
// an identical Quote.
func Compute(products []models.Product) Quote {
	var q Quote
	for _, p := range products {
		q.TotalWeight += p.Weight
		q.ProductSubtotal += p.Price
	}

	q.ShipmentAmount = ShipmentPriceStep * math.Round(q.TotalWeight/ShipmentWeightStep)

	q.TotalAmount = q.ProductSubtotal + q.ShipmentAmount
	if q.TotalAmount > DiscountThreshold {
		q.TotalAmount = q.TotalAmount * DiscountRatio
	}

	return q
}
