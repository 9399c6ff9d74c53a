/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the period engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration (or defaults)
  3. Build the option catalogue and the engine
  4. Initialize SQLite record store
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config   YAML configuration file (optional)
  -addr     Listen address, overrides server.http_address
  -db       SQLite database path, overrides database.path
            Use ":memory:" for in-memory database
  -verbose  Log the effective configuration

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with a config file
  ./server -config=./periods.yaml

  # Run with in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - config/config.go: Configuration file format
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/period-engine/api"
	"github.com/warp/period-engine/config"
	"github.com/warp/period-engine/i18n"
	"github.com/warp/period-engine/periods"
	"github.com/warp/period-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	verbose := flag.Bool("verbose", false, "Log effective configuration")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("[server] Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.HTTPAddress = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	cfg.Verbose = *verbose

	// Engine
	catalogue, err := cfg.Catalogue()
	if err != nil {
		log.Fatalf("[server] Invalid option catalogue: %v", err)
	}
	locales := i18n.NewCatalog()
	defaultLocale := locales.Match(cfg.Engine.DefaultLocale)
	engine := periods.NewEngine(catalogue, locales.Localizer(defaultLocale))

	if cfg.Verbose {
		log.Printf("[server] %d options, %d comparisons, locale %s, database %s",
			len(catalogue.Options()), len(catalogue.Comparisons()), defaultLocale, cfg.Database.Path)
	}

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("[server] Failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(engine, locales, store)
	handler.DefaultLocale = defaultLocale

	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	readTimeout, writeTimeout := cfg.Timeouts()
	server := &http.Server{
		Addr:         cfg.Server.HTTPAddress,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", cfg.Server.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[server] forced shutdown: %v", err)
	}

	log.Println("[server] stopped")
}
