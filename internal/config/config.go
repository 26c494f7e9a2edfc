package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the full runtime configuration, read from environment
// variables (with .env support at the call site). The backing-file
// paths are the only storage configuration the prototype has.
type Config struct {
	// HTTP Server
	Port string

	// Storage
	DataDir          string
	TransactionsFile string
	BudgetsFile      string
	RulesFile        string

	// Backend selection
	DataBackend string

	// Logging
	LogLevel string
}

const (
	BackendFlatfile = "flatfile"
	BackendMemory   = "memory"
)

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataDir:          getEnv("DATA_DIR", "./data"),
		TransactionsFile: getEnv("TRANSACTIONS_FILE", "expenses.csv"),
		BudgetsFile:      getEnv("BUDGETS_FILE", "budgets.json"),
		RulesFile:        getEnv("RULES_FILE", "category_rules.yaml"),

		DataBackend: getEnv("DATA_BACKEND", BackendFlatfile),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// TransactionsPath resolves the transaction log path against DataDir.
func (c *Config) TransactionsPath() string { return c.resolve(c.TransactionsFile) }

// BudgetsPath resolves the budget file path against DataDir.
func (c *Config) BudgetsPath() string { return c.resolve(c.BudgetsFile) }

// RulesPath resolves the categorizer rules path against DataDir.
func (c *Config) RulesPath() string { return c.resolve(c.RulesFile) }

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate validates the configuration and returns an error if invalid.
// All problems are collected so a broken environment surfaces at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendFlatfile, BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]",
			c.DataBackend, BackendFlatfile, BackendMemory))
	}

	if c.DataBackend == BackendFlatfile {
		if strings.TrimSpace(c.DataDir) == "" {
			errors = append(errors, "data directory cannot be empty when using flatfile backend")
		}
		if strings.TrimSpace(c.TransactionsFile) == "" {
			errors = append(errors, "transactions file cannot be empty when using flatfile backend")
		}
		if strings.TrimSpace(c.BudgetsFile) == "" {
			errors = append(errors, "budgets file cannot be empty when using flatfile backend")
		}
		if c.TransactionsPath() == c.BudgetsPath() {
			errors = append(errors, "transactions and budgets cannot share a backing file")
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
