package main

import (
	"fmt"
	"log"
	"os"

	"github.com/scanlens/backend/config"
	httpDelivery "github.com/scanlens/backend/internal/delivery/http"
	"github.com/scanlens/backend/internal/infrastructure/cache"
	"github.com/scanlens/backend/internal/infrastructure/capture"
	"github.com/scanlens/backend/internal/infrastructure/openfoodfacts"
	"github.com/scanlens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ScanLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Lookup endpoint: %s", cfg.Lookup.EndpointTemplate)

	// Initialize infrastructure dependencies
	productCache, err := cache.NewFileCache(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("Failed to initialize product cache: %v", err)
	}
	log.Printf("Product cache: %s (%d records)", cfg.Cache.Path, productCache.Len())

	lookupClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		EndpointTemplate:  cfg.Lookup.EndpointTemplate,
		UserAgent:         cfg.Lookup.UserAgent,
		Timeout:           cfg.Lookup.Timeout,
		RequestsPerSecond: cfg.Lookup.RequestsPerSecond,
		Burst:             cfg.Lookup.Burst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		lookupClient.SetDebug(true)
		log.Printf("Lookup client debug mode enabled")
	}

	captureSession := capture.NewNoopSession()

	// Initialize usecase layer
	scanService := usecase.NewScanService(
		productCache,
		lookupClient,
		captureSession,
		usecase.ScanServiceConfig{
			Cooldown:      cfg.Scan.Cooldown,
			LookupTimeout: cfg.Lookup.Timeout,
		},
	)

	log.Printf("Scan cooldown: %s", cfg.Scan.Cooldown)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scanService, productCache)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
