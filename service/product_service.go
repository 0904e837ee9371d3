package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"product_catalog/domain"
	"product_catalog/result"
)

// DefaultMaxOrderQuantity is used when Config leaves MaxOrderQuantity unset.
const DefaultMaxOrderQuantity = 1000

// Config holds the business limits of the catalog.
type Config struct {
	MaxOrderQuantity uint
}

func (c Config) maxOrderQuantity() uint {
	if c.MaxOrderQuantity == 0 {
		return DefaultMaxOrderQuantity
	}
	return c.MaxOrderQuantity
}

// ProductService runs the catalog workflows against a single repository
// session. It is built per request and must not outlive it.
type ProductService struct {
	repo     domain.ProductRepository
	supplier domain.Supplier
	cfg      Config
	logger   *slog.Logger
}

// NewProductService wires a service for one request.
func NewProductService(repo domain.ProductRepository, supplier domain.Supplier, cfg Config, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{repo: repo, supplier: supplier, cfg: cfg, logger: logger}
}

// CreateProduct validates def, stages the new product and commits it.
func (s *ProductService) CreateProduct(ctx context.Context, def ProductDefinition) Response {
	name := domain.NewProductName(def.Name)
	manufacturer := domain.NewManufacturerName(def.Manufacturer)
	email := domain.ValidateOptionalEmail(def.ImporterEmail)

	product := result.Map(result.Combine(name, manufacturer, email), func(result.Unit) *domain.Product {
		n, _ := name.Unwrap()
		m, _ := manufacturer.Unwrap()
		e, _ := email.Unwrap()
		return domain.NewProduct(def.ProductID, domain.Category(def.Category), n, m, e, def.Quantity)
	})
	product = result.AndThen(product, func(p *domain.Product) result.Result[*domain.Product] {
		return result.From(p, s.repo.Add(ctx, p))
	})

	return result.Fold(product,
		func(p *domain.Product) Response { return s.commit(ctx, "product created", p.ID()) },
		s.respondFailure,
	)
}

// GetProduct returns the definition of the product with the given id.
func (s *ProductService) GetProduct(ctx context.Context, id int64) Response {
	found, err := s.repo.Find(ctx, id)
	if err != nil {
		return s.respondFailure(domain.NewInfrastructureError("find product", err))
	}

	def := result.Map(result.ToResult(found, domain.NewProductNotFoundError(id)), ToDefinition)
	return result.Fold(def,
		func(d ProductDefinition) Response { return OkWith(d) },
		s.respondFailure,
	)
}

// Order takes quantity units of a product out of stock, restocking from the
// supplier first when stock is short. Any failure not modelled by the
// pipeline, including panics, ends up as an InternalError.
func (s *ProductService) Order(ctx context.Context, id int64, quantity uint) (resp Response) {
	defer s.boundary("order", id, &resp)

	found, err := s.repo.Find(ctx, id)
	if err != nil {
		return s.respondFailure(domain.NewInfrastructureError("find product", err))
	}

	limit := s.cfg.maxOrderQuantity()
	product := result.ToResult(found, domain.NewProductNotFoundError(id))
	product = result.Ensure(product, func(*domain.Product) bool { return quantity <= limit },
		domain.NewOrderTooLargeError(quantity, limit))
	product = result.AndThen(product, func(p *domain.Product) result.Result[*domain.Product] {
		if p.Quantity() < quantity {
			return s.orderFromSupplier(ctx, p, quantity)
		}
		return result.Ok(p)
	})
	product = result.AndThen(product, func(p *domain.Product) result.Result[*domain.Product] {
		return result.From(p, p.Withdraw(quantity))
	})

	return result.Fold(product,
		func(p *domain.Product) Response { return s.commit(ctx, "order placed", p.ID()) },
		s.respondFailure,
	)
}

// orderFromSupplier covers the gap between stock and quantity. The product
// is only restocked when the delivery is enough for the order.
func (s *ProductService) orderFromSupplier(ctx context.Context, p *domain.Product, quantity uint) result.Result[*domain.Product] {
	excess := quantity - p.Quantity()
	ordered, err := s.supplier.Order(ctx, p.ID(), p.Manufacturer(), excess)
	if err != nil {
		return result.Fail[*domain.Product](domain.NewInfrastructureError("supplier order", err))
	}
	s.logger.Info("supplier order placed", "product_id", p.ID(), "requested", excess, "ordered", ordered)

	available := p.Quantity() + ordered
	restocked := result.Ensure(result.Ok(p), func(*domain.Product) bool { return available >= quantity },
		domain.NewOutOfStockError(p.ID(), quantity, available))
	return result.Tap(restocked, func(p *domain.Product) { p.Restock(ordered) })
}

func (s *ProductService) commit(ctx context.Context, msg string, id int64) Response {
	start := time.Now()
	if err := s.repo.Commit(ctx); err != nil {
		s.logger.Error("commit failed", "product_id", id, "error", err)
		return InternalError(err.Error())
	}
	s.logger.Info(msg, "product_id", id, "duration_ms", time.Since(start).Milliseconds())
	return Ok()
}

// respondFailure is the single place where a pipeline error picks its
// response shape.
func (s *ProductService) respondFailure(err error) Response {
	if isClientError(err) {
		s.logger.Warn("request rejected", "error", err)
		return BadRequest(err.Error())
	}
	s.logger.Error("request failed", "error", err)
	return InternalError(err.Error())
}

func (s *ProductService) boundary(op string, id int64, resp *Response) {
	if r := recover(); r != nil {
		s.logger.Error("unexpected failure", "operation", op, "product_id", id, "panic", r, "stack", string(debug.Stack()))
		*resp = InternalError("internal server error")
	}
}

// isClientError reports whether err is one the caller can fix by changing
// the request. Everything else is treated as an infrastructure failure.
func isClientError(err error) bool {
	if domain.IsInfrastructureError(err) {
		return false
	}
	return domain.IsValidationError(err) ||
		domain.IsProductNotFoundError(err) ||
		domain.IsDuplicateProductError(err) ||
		domain.IsOrderTooLargeError(err) ||
		domain.IsOutOfStockError(err)
}
