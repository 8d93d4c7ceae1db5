package orders

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an order lookup matches nothing.
var ErrNotFound = errors.New("order not found")

// InvalidStatusError reports a status value outside the allowed set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// UnknownProductsError reports that none of the requested product IDs
// matched a catalog entry. A partially matching list is not an error;
// unknown IDs are silently dropped.
type UnknownProductsError struct {
	IDs []string
}

func (e *UnknownProductsError) Error() string {
	return fmt.Sprintf("none of the %d requested products exist", len(e.IDs))
}
