package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricefinder/backend/config"
	httpDelivery "github.com/pricefinder/backend/internal/delivery/http"
	"github.com/pricefinder/backend/internal/infrastructure/cache"
	"github.com/pricefinder/backend/internal/infrastructure/digikala"
	"github.com/pricefinder/backend/internal/infrastructure/torob"
	"github.com/pricefinder/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	memoryCache := cache.NewMemoryCache()

	digikalaClient := digikala.NewClient(cfg.Digikala.BaseURL)
	torobClient := torob.NewClient(cfg.Torob.BaseURL)

	if cfg.Debug {
		digikalaClient.SetDebug(true)
		torobClient.SetDebug(true)
		log.Printf("Platform client debug mode enabled")
	}

	log.Printf("Digikala API: %s", cfg.Digikala.BaseURL)
	log.Printf("Torob API: %s", cfg.Torob.BaseURL)

	searchService := usecase.NewSearchService(
		digikalaClient,
		torobClient,
		memoryCache,
		usecase.SearchServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Debug,
		},
	)

	productService := usecase.NewProductService(
		digikalaClient,
		torobClient,
		searchService,
		memoryCache,
		usecase.ProductServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Debug,
		},
	)

	handler := httpDelivery.NewHandler(searchService, productService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
