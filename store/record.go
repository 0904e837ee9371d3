// Package store provides storage implementations for the product catalog.
package store

import (
	"product_catalog/domain"
)

// record is the flat, persisted shape of a product
type record struct {
	ID            int64   `json:"id"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	ImporterEmail *string `json:"importer_email,omitempty"`
	Quantity      uint    `json:"quantity"`
}

func toRecord(p *domain.Product) record {
	r := record{
		ID:           p.ID(),
		Category:     string(p.Category()),
		Name:         p.Name().String(),
		Manufacturer: p.Manufacturer().String(),
		Quantity:     p.Quantity(),
	}
	if e, ok := p.ImporterEmail().Get(); ok {
		s := e.String()
		r.ImporterEmail = &s
	}
	return r
}

func (r record) product() (*domain.Product, error) {
	return domain.RestoreProduct(r.ID, r.Category, r.Name, r.Manufacturer, r.ImporterEmail, r.Quantity)
}

func (r record) equal(o record) bool {
	if r.ID != o.ID || r.Category != o.Category || r.Name != o.Name || r.Manufacturer != o.Manufacturer || r.Quantity != o.Quantity {
		return false
	}
	if (r.ImporterEmail == nil) != (o.ImporterEmail == nil) {
		return false
	}
	return r.ImporterEmail == nil || *r.ImporterEmail == *o.ImporterEmail
}
