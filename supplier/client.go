// Package supplier contains the integrations used to restock products.
package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"product_catalog/domain"
	"product_catalog/util"
)

// Config holds the supplier API settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls a remote supplier over HTTP.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	newReference func() string
}

// compile-time assertion
var _ domain.Supplier = (*Client)(nil)

// OrderRequest is the body sent to POST /orders.
type OrderRequest struct {
	Reference    string `json:"reference"`
	ProductID    int64  `json:"productId"`
	Manufacturer string `json:"manufacturer"`
	Quantity     uint   `json:"quantity"`
}

// OrderResponse is the supplier's answer; OrderedQuantity may be below the
// requested quantity when the supplier is short.
type OrderResponse struct {
	Reference       string `json:"reference"`
	OrderedQuantity uint   `json:"orderedQuantity"`
}

// NewClient creates a new supplier client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		httpClient:   &http.Client{Timeout: timeout},
		newReference: util.GenerateUUID,
	}
}

// Order asks the supplier for quantity units of the product and returns how
// many it will deliver.
func (c *Client) Order(ctx context.Context, productID int64, manufacturer domain.ManufacturerName, quantity uint) (uint, error) {
	reqBody := OrderRequest{
		Reference:    c.newReference(),
		ProductID:    productID,
		Manufacturer: manufacturer.String(),
		Quantity:     quantity,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", reqBody.Reference)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("supplier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode order response: %w", err)
	}
	return out.OrderedQuantity, nil
}
