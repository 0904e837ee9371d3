// Package cli provides the Cobra-based CLI for the product catalog.
package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"product_catalog/api"
	"product_catalog/domain"
	"product_catalog/service"
	"product_catalog/util"
)

var (
	rootCmd = &cobra.Command{
		Use:           "catalog",
		Short:         "A product catalog with supplier restocking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject the catalog
			if catalog != nil {
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			settings = cfg
			logger := newLogger(cfg.LogLevel)
			slog.SetDefault(logger)

			catalog, productStore, err = buildCatalog(cmd.Context(), cfg, logger)
			if err != nil {
				catalog, productStore = nil, nil
				return err
			}
			return nil
		},
	}

	settings     Config
	catalog      api.Catalog
	productStore domain.ProductStore
)

func init() {
	bindFlags()

	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())
			for {
				fmt.Print("catalog> ")
				line, err := r.ReadString('\n')
				line = strings.TrimSpace(line)
				if line == "exit" || line == "quit" {
					return nil
				}
				if line != "" {
					resetCommandFlags()
					rootCmd.SetArgs(strings.Fields(line))
					if err := rootCmd.Execute(); err != nil {
						fmt.Fprintln(os.Stderr, err)
					}
					rootCmd.SetArgs(nil)
				}
				if err != nil {
					return nil
				}
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	// serve
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(settings)
		},
	}
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int64("max-concurrent-requests", 1, "requests handled at once")
	serveCmd.Flags().Duration("shutdown-timeout", 15*time.Second, "graceful shutdown timeout")
	serveCmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins")
	for _, name := range []string{"addr", "max-concurrent-requests", "shutdown-timeout", "cors-origins"} {
		viper.BindPFlag(name, serveCmd.Flags().Lookup(name))
	}
	rootCmd.AddCommand(serveCmd)

	// create
	var def service.ProductDefinition
	var importerEmail string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("id") {
				return errors.New("--id required")
			}
			def.ImporterEmail = nil
			if cmd.Flags().Changed("importer-email") {
				email := importerEmail
				def.ImporterEmail = &email
			}
			start := time.Now()
			resp := catalog.CreateProduct(cmd.Context(), def)
			if !resp.IsOK() {
				slog.Error("create failed", "product_id", def.ProductID, "error", resp.Message)
				return responseError(resp)
			}
			slog.Info("product created", "product_id", def.ProductID, "duration_ms", time.Since(start).Milliseconds())
			return printResponse(resp)
		},
	}
	createCmd.Flags().Int64Var(&def.ProductID, "id", 0, "product id")
	createCmd.Flags().StringVar(&def.Name, "name", "", "name")
	createCmd.Flags().StringVar(&def.Manufacturer, "manufacturer", "", "manufacturer")
	createCmd.Flags().StringVar(&def.Category, "category", "", "category")
	createCmd.Flags().UintVar(&def.Quantity, "quantity", 0, "quantity")
	createCmd.Flags().StringVar(&importerEmail, "importer-email", "", "importer email")
	rootCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseProductID(args[0])
			if err != nil {
				return err
			}
			resp := catalog.GetProduct(cmd.Context(), id)
			if !resp.IsOK() {
				return responseError(resp)
			}
			return printResponse(resp)
		},
	}
	rootCmd.AddCommand(getCmd)

	// order
	var orderQuantity uint
	orderCmd := &cobra.Command{
		Use:   "order <id>",
		Short: "Order units of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseProductID(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			resp := catalog.Order(cmd.Context(), id, orderQuantity)
			if !resp.IsOK() {
				slog.Error("order failed", "product_id", id, "quantity", orderQuantity, "error", resp.Message)
				return responseError(resp)
			}
			slog.Info("order placed", "product_id", id, "quantity", orderQuantity, "duration_ms", time.Since(start).Milliseconds())
			return printResponse(resp)
		},
	}
	orderCmd.Flags().UintVar(&orderQuantity, "quantity", 0, "quantity")
	rootCmd.AddCommand(orderCmd)

	// import (JSON array or NDJSON)
	var importFile string
	importCmd := &cobra.Command{
		Use:   "import --file <file>",
		Short: "Import product definitions from JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if importFile == "" {
				return errors.New("--file required")
			}

			b, err := os.ReadFile(importFile)
			if err != nil {
				return err
			}
			defs, err := parseDefinitions(b)
			if err != nil {
				return err
			}

			failed := 0
			for _, d := range defs {
				resp := catalog.CreateProduct(cmd.Context(), d)
				if !resp.IsOK() {
					failed++
					slog.Warn("import skipped product", "product_id", d.ProductID, "error", resp.Message)
				}
			}
			fmt.Printf("imported %d of %d products\n", len(defs)-failed, len(defs))
			if failed > 0 {
				return fmt.Errorf("%d products were not imported", failed)
			}
			return nil
		},
	}
	importCmd.Flags().StringVar(&importFile, "file", "", "input file")
	rootCmd.AddCommand(importCmd)
}

func parseDefinitions(b []byte) ([]service.ProductDefinition, error) {
	btrim := bytes.TrimSpace(b)
	if len(btrim) == 0 {
		return nil, errors.New("empty file")
	}

	var defs []service.ProductDefinition
	if btrim[0] == '[' {
		if err := json.Unmarshal(btrim, &defs); err != nil {
			return nil, err
		}
		return defs, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(btrim))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var d service.ProductDefinition
		if err := json.Unmarshal(line, &d); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}

func serve(cfg Config) error {
	srv := newHTTPServer(cfg, catalog, slog.Default())

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	ops := map[string]gfshutdown.Operation{
		"http-server": srv.Shutdown,
	}
	if st := productStore; st != nil {
		productStore = nil
		ops["store"] = func(ctx context.Context) error {
			return st.Close()
		}
	}
	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, ops)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		if code := <-wait; code != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", code)
		}
	case code := <-wait:
		if code != 0 {
			return fmt.Errorf("shutdown finished with exit code %d", code)
		}
	}
	return nil
}

func printResponse(resp service.Response) error {
	if resp.Body == nil {
		fmt.Println("ok")
		return nil
	}
	b, err := json.MarshalIndent(resp.Body, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func responseError(resp service.Response) error {
	return fmt.Errorf("%s: %s", resp.Status, resp.Message)
}

// resetCommandFlags restores every subcommand flag to its default so that
// repeated executions in one process start clean.
func resetCommandFlags() {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// Execute runs the root command and releases the store it opened.
func Execute() error {
	err := rootCmd.Execute()
	if productStore != nil {
		if cerr := productStore.Close(); cerr != nil && err == nil {
			err = cerr
		}
		productStore = nil
		catalog = nil
	}
	return err
}
