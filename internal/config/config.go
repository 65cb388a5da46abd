package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all SDK configuration
type Config struct {
	Checkout  CheckoutConfig
	CardVault VendorConfig
	Risk      VendorConfig
	Logger    LoggerConfig
}

// CheckoutConfig holds embedded checkout configuration
type CheckoutConfig struct {
	Origin           string        // Expected origin of the embedded checkout frame (e.g. https://checkout.example.com)
	StorageNamespace string        // Prefix for persisted consent flags
	FrameTimeout     time.Duration // How long to wait for the frame-loaded signal
}

// VendorConfig holds configuration for one payment vendor gateway
type VendorConfig struct {
	BaseURL       string // Vendor API base URL
	ApplicationID string // Public client application id issued by the vendor
	Timeout       int    // Request timeout in seconds (default: 30)
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Checkout: CheckoutConfig{
			Origin:           getEnv("CHECKOUT_ORIGIN", ""),
			StorageNamespace: getEnv("CHECKOUT_STORAGE_NAMESPACE", "checkout.embed"),
			FrameTimeout:     time.Duration(getEnvAsInt("CHECKOUT_FRAME_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		CardVault: VendorConfig{
			BaseURL:       getEnv("CARDVAULT_BASE_URL", "https://sandbox.cardvault.example.com/v2"),
			ApplicationID: getEnv("CARDVAULT_APPLICATION_ID", ""),
			Timeout:       getEnvAsInt("CARDVAULT_TIMEOUT", 30),
		},
		Risk: VendorConfig{
			BaseURL:       getEnv("RISK_BASE_URL", "https://sandbox.riskscore.example.com/v1"),
			ApplicationID: getEnv("RISK_APPLICATION_ID", ""),
			Timeout:       getEnvAsInt("RISK_TIMEOUT", 30),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Checkout.Origin == "" {
		return nil, fmt.Errorf("CHECKOUT_ORIGIN is required")
	}

	return cfg, nil
}

// NewLogger builds a zap logger from logger configuration
func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	if cfg.Development {
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		return zapCfg.Build()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// Helper functions

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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
