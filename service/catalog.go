package service

import (
	"context"
	"log/slog"

	"product_catalog/domain"
)

// Catalog opens a fresh repository session for every call and runs the
// matching ProductService workflow on it.
type Catalog struct {
	store    domain.ProductStore
	supplier domain.Supplier
	cfg      Config
	logger   *slog.Logger
}

// NewCatalog creates a Catalog over store and supplier.
func NewCatalog(store domain.ProductStore, supplier domain.Supplier, cfg Config, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, supplier: supplier, cfg: cfg, logger: logger}
}

func (c *Catalog) CreateProduct(ctx context.Context, def ProductDefinition) Response {
	return c.run(ctx, func(s *ProductService) Response { return s.CreateProduct(ctx, def) })
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) Response {
	return c.run(ctx, func(s *ProductService) Response { return s.GetProduct(ctx, id) })
}

func (c *Catalog) Order(ctx context.Context, id int64, quantity uint) Response {
	return c.run(ctx, func(s *ProductService) Response { return s.Order(ctx, id, quantity) })
}

func (c *Catalog) run(ctx context.Context, fn func(*ProductService) Response) Response {
	repo, err := c.store.Begin(ctx)
	if err != nil {
		c.logger.Error("begin session failed", "error", err)
		return InternalError(err.Error())
	}
	return fn(NewProductService(repo, c.supplier, c.cfg, c.logger))
}
