package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"product_catalog/api"
	"product_catalog/domain"
	"product_catalog/service"
	"product_catalog/store"
	"product_catalog/supplier"
)

// Config is the resolved runtime configuration.
type Config struct {
	Store                 string
	StoreDSN              string
	LogLevel              string
	Addr                  string
	MaxOrderQuantity      uint
	SupplierURL           string
	SupplierAPIKey        string
	SupplierTimeout       time.Duration
	WarehouseStock        uint
	MaxConcurrentRequests int64
	ShutdownTimeout       time.Duration
	CORSOrigins           []string
}

func bindFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("store", "memory", "store backend: memory|file|sqlite|postgres|redis")
	flags.String("store-dsn", "", "store location: file path, sqlite path, postgres DSN or redis address")
	flags.String("config", "", "config file")
	flags.String("log-level", "info", "log level")
	flags.Uint("max-order-quantity", service.DefaultMaxOrderQuantity, "largest quantity accepted in a single order")
	flags.String("supplier-url", "", "supplier API base URL (empty uses the warehouse simulator)")
	flags.String("supplier-api-key", "", "supplier API key")
	flags.Duration("supplier-timeout", 10*time.Second, "supplier request timeout")
	flags.Uint("warehouse-stock", 100, "units the warehouse simulator holds per manufacturer")

	for _, name := range []string{
		"store", "store-dsn", "config", "log-level", "max-order-quantity",
		"supplier-url", "supplier-api-key", "supplier-timeout", "warehouse-stock",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	viper.SetEnvPrefix("CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the optional config file and resolves every key.
func loadConfig() (Config, error) {
	if cfg := viper.GetString("config"); cfg != "" {
		viper.SetConfigFile(cfg)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		Store:                 viper.GetString("store"),
		StoreDSN:              viper.GetString("store-dsn"),
		LogLevel:              viper.GetString("log-level"),
		Addr:                  viper.GetString("addr"),
		MaxOrderQuantity:      viper.GetUint("max-order-quantity"),
		SupplierURL:           viper.GetString("supplier-url"),
		SupplierAPIKey:        viper.GetString("supplier-api-key"),
		SupplierTimeout:       viper.GetDuration("supplier-timeout"),
		WarehouseStock:        viper.GetUint("warehouse-stock"),
		MaxConcurrentRequests: viper.GetInt64("max-concurrent-requests"),
		ShutdownTimeout:       viper.GetDuration("shutdown-timeout"),
		CORSOrigins:           viper.GetStringSlice("cors-origins"),
	}, nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newSupplier(cfg Config) domain.Supplier {
	if cfg.SupplierURL == "" {
		return supplier.NewWarehouse(cfg.WarehouseStock)
	}
	return supplier.NewClient(supplier.Config{
		BaseURL: cfg.SupplierURL,
		APIKey:  cfg.SupplierAPIKey,
		Timeout: cfg.SupplierTimeout,
	})
}

// buildCatalog opens the configured store and wires the catalog over it.
// The caller owns the returned store.
func buildCatalog(ctx context.Context, cfg Config, logger *slog.Logger) (*service.Catalog, domain.ProductStore, error) {
	st, err := store.NewStore(ctx, cfg.Store, cfg.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	catalog := service.NewCatalog(st, newSupplier(cfg), service.Config{MaxOrderQuantity: cfg.MaxOrderQuantity}, logger)
	return catalog, st, nil
}

func newHTTPServer(cfg Config, catalog api.Catalog, logger *slog.Logger) *http.Server {
	handlers := api.NewHandlers(catalog, cfg.MaxConcurrentRequests, logger)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.SetupRoutes(handlers, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
