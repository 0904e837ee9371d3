package supplier

import (
	"context"
	"sync"

	"product_catalog/domain"
)

// Warehouse is an in-process supplier with a finite stock per manufacturer.
// It backs local runs where no supplier URL is configured.
type Warehouse struct {
	mu        sync.Mutex
	capacity  uint
	remaining map[string]uint
}

// compile-time assertion
var _ domain.Supplier = (*Warehouse)(nil)

// NewWarehouse creates a warehouse holding stock units for every manufacturer.
func NewWarehouse(stock uint) *Warehouse {
	return &Warehouse{
		capacity:  stock,
		remaining: make(map[string]uint),
	}
}

// Order delivers as much of quantity as the manufacturer's stock allows.
func (w *Warehouse) Order(ctx context.Context, productID int64, manufacturer domain.ManufacturerName, quantity uint) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	left := w.remainingLocked(manufacturer.String())
	delivered := quantity
	if delivered > left {
		delivered = left
	}
	w.remaining[manufacturer.String()] = left - delivered
	return delivered, nil
}

// Remaining reports the stock left for a manufacturer.
func (w *Warehouse) Remaining(manufacturer string) uint {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.remainingLocked(manufacturer)
}

func (w *Warehouse) remainingLocked(manufacturer string) uint {
	left, ok := w.remaining[manufacturer]
	if !ok {
		return w.capacity
	}
	return left
}
