// Package api exposes the catalog over HTTP.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/semaphore"

	"product_catalog/service"
	"product_catalog/util"
)

// Catalog is the set of operations the HTTP layer serves.
type Catalog interface {
	CreateProduct(ctx context.Context, def service.ProductDefinition) service.Response
	GetProduct(ctx context.Context, id int64) service.Response
	Order(ctx context.Context, id int64, quantity uint) service.Response
}

// OrderRequest is the body of POST /api/products/{id}/orders.
type OrderRequest struct {
	Quantity uint `json:"quantity"`
}

// Handlers holds the HTTP handlers. Requests are run one at a time (or up
// to the configured weight) so the catalog core never sees two requests at
// once.
type Handlers struct {
	catalog Catalog
	sem     *semaphore.Weighted
	logger  *slog.Logger
}

// NewHandlers creates the handlers. maxConcurrent below 1 is treated as 1.
func NewHandlers(catalog Catalog, maxConcurrent int64, logger *slog.Logger) *Handlers {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		catalog: catalog,
		sem:     semaphore.NewWeighted(maxConcurrent),
		logger:  logger,
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateProduct handles POST /api/products.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var def service.ProductDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.serve(w, r, func(ctx context.Context) service.Response {
		return h.catalog.CreateProduct(ctx, def)
	})
}

// GetProduct handles GET /api/products/{id}.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseProductID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.serve(w, r, func(ctx context.Context) service.Response {
		return h.catalog.GetProduct(ctx, id)
	})
}

// Order handles POST /api/products/{id}/orders.
func (h *Handlers) Order(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseProductID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.serve(w, r, func(ctx context.Context) service.Response {
		return h.catalog.Order(ctx, id, req.Quantity)
	})
}

func (h *Handlers) serve(w http.ResponseWriter, r *http.Request, fn func(context.Context) service.Response) {
	ctx := r.Context()
	if err := h.sem.Acquire(ctx, 1); err != nil {
		h.logger.Warn("request abandoned while queued", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	defer h.sem.Release(1)

	writeResponse(w, fn(ctx))
}
