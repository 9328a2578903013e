package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Catalog  CatalogConfig
	Shop     ShopConfig
	Promo    PromoConfig
	LogLevel string
}

type CatalogConfig struct {
	Path string
}

type ShopConfig struct {
	Name string
}

type PromoConfig struct {
	CodesFile       string // empty disables the promo prompt
	DiscountPercent int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_FILE", "cookies.csv"),
		},
		Shop: ShopConfig{
			Name: getEnv("SHOP_NAME", "The Cookie Shop"),
		},
		Promo: PromoConfig{
			CodesFile:       getEnv("PROMO_CODES_FILE", ""),
			DiscountPercent: getEnvAsInt("PROMO_DISCOUNT_PERCENT", 10),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_FILE is required")
	}

	if c.Shop.Name == "" {
		return fmt.Errorf("SHOP_NAME must not be empty")
	}

	if c.Promo.DiscountPercent < 1 || c.Promo.DiscountPercent > 100 {
		return fmt.Errorf("invalid promo discount: %d (must be between 1 and 100)", c.Promo.DiscountPercent)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
