package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/crumbworks/cookieshop/internal/cli"
	"github.com/crumbworks/cookieshop/internal/config"
	"github.com/crumbworks/cookieshop/internal/promo"
	"github.com/crumbworks/cookieshop/internal/repository"
	"github.com/crumbworks/cookieshop/internal/service"
	"github.com/crumbworks/cookieshop/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting cookie shop register",
		"shop", cfg.Shop.Name,
		"catalog", cfg.Catalog.Path,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Load the catalog; a malformed catalog is fatal since no valid
	// product list can be constructed from it.
	catalogRepo, err := repository.NewCSVCatalogRepository(cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	products, _ := catalogRepo.GetAll(ctx)
	log.Info("catalog loaded", "products", len(products))

	// Promo codes are optional; without a codes file the prompt is skipped.
	var promoValidator service.PromoValidator
	if cfg.Promo.CodesFile != "" {
		validator := promo.NewValidator()
		if err := validator.LoadFromFile(cfg.Promo.CodesFile); err != nil {
			log.Error("failed to load promo codes", "path", cfg.Promo.CodesFile, "error", err)
			os.Exit(1)
		}
		log.Info("promo codes loaded",
			"total_codes", validator.Count(),
			"discount_percent", cfg.Promo.DiscountPercent,
		)
		promoValidator = validator
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	orderService := service.NewOrderService(catalogRepo, promoValidator, int64(cfg.Promo.DiscountPercent))

	// Run the interactive session
	shop := cli.NewShop(cfg.Shop.Name, catalogService, orderService, promoValidator != nil, os.Stdin, os.Stdout, log)
	if err := shop.Run(ctx); err != nil {
		log.Error("session failed", "error", err)
		os.Exit(1)
	}

	log.Info("session complete")
}
