// Package domain defines core business types and interfaces.
package domain

import (
	"product_catalog/result"
)

// Category groups products in the catalog
type Category string

// Product is the catalog aggregate. Its fields are only reachable through
// methods so that Name, Manufacturer and ImporterEmail stay valid and
// Quantity can never drop below zero.
type Product struct {
	id            int64
	category      Category
	name          ProductName
	manufacturer  ManufacturerName
	importerEmail result.Maybe[Email]
	quantity      uint
}

// NewProduct assembles a product from already validated parts
func NewProduct(id int64, category Category, name ProductName, manufacturer ManufacturerName, importerEmail result.Maybe[Email], quantity uint) *Product {
	return &Product{
		id:            id,
		category:      category,
		name:          name,
		manufacturer:  manufacturer,
		importerEmail: importerEmail,
		quantity:      quantity,
	}
}

// RestoreProduct rebuilds a product from raw stored fields, re-running the
// value type validation. Stored rows that no longer validate are rejected.
func RestoreProduct(id int64, category string, name, manufacturer string, importerEmail *string, quantity uint) (*Product, error) {
	n := NewProductName(name)
	m := NewManufacturerName(manufacturer)
	e := ValidateOptionalEmail(importerEmail)
	if err := result.Combine(n, m, e).Err(); err != nil {
		return nil, err
	}
	pn, _ := n.Unwrap()
	mn, _ := m.Unwrap()
	em, _ := e.Unwrap()
	return NewProduct(id, Category(category), pn, mn, em, quantity), nil
}

// ValidateOptionalEmail treats a nil address as "no email" and validates anything else.
func ValidateOptionalEmail(raw *string) result.Result[result.Maybe[Email]] {
	if raw == nil {
		return result.Ok(result.None[Email]())
	}
	return result.Map(NewEmail(*raw), result.Some[Email])
}

func (p *Product) ID() int64                          { return p.id }
func (p *Product) Category() Category                 { return p.category }
func (p *Product) Name() ProductName                  { return p.name }
func (p *Product) Manufacturer() ManufacturerName     { return p.manufacturer }
func (p *Product) ImporterEmail() result.Maybe[Email] { return p.importerEmail }
func (p *Product) Quantity() uint                     { return p.quantity }

// Restock adds units delivered by a supplier
func (p *Product) Restock(n uint) {
	p.quantity += n
}

// Withdraw removes n units from stock, refusing to go below zero
func (p *Product) Withdraw(n uint) error {
	if n > p.quantity {
		return NewOutOfStockError(p.id, n, p.quantity)
	}
	p.quantity -= n
	return nil
}
