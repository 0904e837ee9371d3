package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product_catalog/service"
	"product_catalog/store"
	"product_catalog/supplier"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, warehouseStock uint) *httptest.Server {
	t.Helper()
	catalog := service.NewCatalog(store.NewInMemoryStore(), supplier.NewWarehouse(warehouseStock), service.Config{MaxOrderQuantity: 1000}, discardLogger())
	srv := httptest.NewServer(SetupRoutes(NewHandlers(catalog, 1, discardLogger()), []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, 0)

	status, body := do(t, http.MethodGet, srv.URL+"/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t, 5)

	status, _ := do(t, http.MethodPost, srv.URL+"/api/products",
		`{"productId":1,"category":"tools","name":"Drill","manufacturer":"Bosch","importerEmail":null,"quantity":5}`)
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, http.MethodGet, srv.URL+"/api/products/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Drill", body["name"])
	assert.Equal(t, "Bosch", body["manufacturer"])
	assert.Equal(t, "tools", body["category"])
	assert.EqualValues(t, 5, body["quantity"])
	assert.Nil(t, body["importerEmail"])

	status, _ = do(t, http.MethodPost, srv.URL+"/api/products/1/orders", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, status)

	_, body = do(t, http.MethodGet, srv.URL+"/api/products/1", "")
	assert.EqualValues(t, 2, body["quantity"])

	status, body = do(t, http.MethodPost, srv.URL+"/api/products/1/orders", `{"quantity":10}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "The product is out of stock", body["error"])

	status, body = do(t, http.MethodPost, srv.URL+"/api/products/1/orders", `{"quantity":1001}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "The order is too large", body["error"])
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, 0)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		wantErr string
	}{
		{"empty name", http.MethodPost, "/api/products", `{"productId":1,"name":"","manufacturer":"Bosch"}`, "Product name should not be empty"},
		{"bad email", http.MethodPost, "/api/products", `{"productId":1,"name":"Drill","manufacturer":"Bosch","importerEmail":"x"}`, "Email is invalid"},
		{"malformed json", http.MethodPost, "/api/products", `{`, "invalid request body"},
		{"unknown product", http.MethodGet, "/api/products/42", "", "Product with id 42 was not found"},
		{"non numeric id", http.MethodGet, "/api/products/abc", "", `invalid product id "abc"`},
		{"negative quantity", http.MethodPost, "/api/products/1/orders", `{"quantity":-1}`, "invalid request body"},
		{"order unknown product", http.MethodPost, "/api/products/9/orders", `{"quantity":1}`, "Product with id 9 was not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

type stubCatalog struct {
	resp     service.Response
	inFlight int32
	maxSeen  int32
	delay    time.Duration
}

func (c *stubCatalog) call() service.Response {
	n := atomic.AddInt32(&c.inFlight, 1)
	for {
		seen := atomic.LoadInt32(&c.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&c.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(c.delay)
	atomic.AddInt32(&c.inFlight, -1)
	return c.resp
}

func (c *stubCatalog) CreateProduct(ctx context.Context, def service.ProductDefinition) service.Response {
	return c.call()
}

func (c *stubCatalog) GetProduct(ctx context.Context, id int64) service.Response {
	return c.call()
}

func (c *stubCatalog) Order(ctx context.Context, id int64, quantity uint) service.Response {
	return c.call()
}

func TestInternalErrorMapping(t *testing.T) {
	stub := &stubCatalog{resp: service.InternalError("supplier order: timeout")}
	srv := httptest.NewServer(SetupRoutes(NewHandlers(stub, 1, discardLogger()), nil))
	defer srv.Close()

	status, body := do(t, http.MethodPost, srv.URL+"/api/products/1/orders", `{"quantity":1}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "supplier order: timeout", body["error"])
}

func TestRequestsAreSerialized(t *testing.T) {
	stub := &stubCatalog{resp: service.Ok(), delay: 20 * time.Millisecond}
	srv := httptest.NewServer(SetupRoutes(NewHandlers(stub, 1, discardLogger()), nil))
	defer srv.Close()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/api/products/1")
			if err == nil {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.maxSeen))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, 0)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
