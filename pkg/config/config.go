package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	WalletPath       string
	LogLevel         string
	LogPretty        bool
	ExportOut        string
	ExportPassphrase string
}

// Load reads configuration from environment variables, and from a .env file if one exists.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		WalletPath:       getEnv("WALLET_PATH", "."),
		LogLevel:         getEnv("WALLET_LOG_LEVEL", "warn"),
		LogPretty:        getEnvAsBool("WALLET_LOG_PRETTY", true),
		ExportOut:        getEnv("WALLET_EXPORT_OUT", "jsonfile:tmp/export.json"),
		ExportPassphrase: getEnv("WALLET_EXPORT_PASSPHRASE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.WalletPath == "" {
		errs = append(errs, fmt.Errorf("WALLET_PATH is required"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("WALLET_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if kind, target, ok := strings.Cut(c.ExportOut, ":"); !ok || kind == "" || target == "" {
		errs = append(errs, fmt.Errorf("WALLET_EXPORT_OUT %q is not of the form kind:target", c.ExportOut))
	}

	return errors.Join(errs...)
}

// ResolveOut makes the path of a file output relative to the wallet directory, unless it is
// absolute. Other outputs are returned unchanged.
func (c *Config) ResolveOut(out string) string {
	kind, target, ok := strings.Cut(out, ":")
	if !ok {
		return out
	}
	switch kind {
	case "jsonfile", "xlsx", "sealed":
		if !filepath.IsAbs(target) {
			return kind + ":" + filepath.Join(c.WalletPath, target)
		}
	}
	return out
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
