package service

import (
	"product_catalog/domain"
	"product_catalog/result"
)

// ProductDefinition is the external shape of a product.
type ProductDefinition struct {
	ProductID     int64   `json:"productId"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	ImporterEmail *string `json:"importerEmail"`
	Quantity      uint    `json:"quantity"`
}

// ToDefinition projects a product back into its external shape.
func ToDefinition(p *domain.Product) ProductDefinition {
	return ProductDefinition{
		ProductID:     p.ID(),
		Category:      string(p.Category()),
		Name:          p.Name().String(),
		Manufacturer:  p.Manufacturer().String(),
		ImporterEmail: result.MapMaybe(p.ImporterEmail(), domain.Email.String).Pointer(),
		Quantity:      p.Quantity(),
	}
}
