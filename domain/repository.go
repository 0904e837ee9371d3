package domain

import (
	"context"

	"product_catalog/result"
)

// ProductRepository is a unit of work over the catalog. Changes made to
// products returned by Find, and products passed to Add, become durable only
// when Commit succeeds.
type ProductRepository interface {
	// Find looks a product up by id. Absence is not an error; the error
	// return is reserved for storage failures.
	Find(ctx context.Context, id int64) (result.Maybe[*Product], error)
	// Add stages a new product.
	Add(ctx context.Context, product *Product) error
	// Commit persists every staged or modified product.
	Commit(ctx context.Context) error
}

// ProductStore hands out one repository session per request
type ProductStore interface {
	Begin(ctx context.Context) (ProductRepository, error)
	Close() error
}

// Supplier restocks products from outside the catalog. Order returns the
// quantity actually delivered, which may be less than asked for.
type Supplier interface {
	Order(ctx context.Context, productID int64, manufacturer ManufacturerName, quantity uint) (uint, error)
}
