// Package cmd provides the CLI commands for smartspend.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"smartspend/internal/category"
	"smartspend/internal/config"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
	"smartspend/internal/store/flatfile"
	"smartspend/internal/store/memory"
)

var debug bool

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "smartspend",
	Short: "Simulated UPI expense tracker with budgets",
	Long: `smartspend records simulated UPI expenses into a local CSV log,
auto-tags them into spending categories by keyword, tracks per-category
monthly budgets in a local JSON file and serves a single-page dashboard.

Example:
  smartspend serve
  smartspend report --year 2024 --month 3`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional local convenience; ignore when absent.
		_ = godotenv.Load()

		cfg := config.Load()
		level := cfg.SlogLevel()
		if debug {
			level = slog.LevelDebug
		}
		logger := applog.New(applog.Config{Level: level})
		applog.SetDefault(logger)
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
}

// loadConfig loads and validates configuration or exits.
func loadConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", applog.FieldError, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// buildService wires the configured backend, the categorizer and the
// expense service.
func buildService(cfg *config.Config) (*services.ExpenseService, error) {
	rules, err := category.LoadRules(cfg.RulesPath())
	if err != nil {
		return nil, fmt.Errorf("load categorizer rules: %w", err)
	}
	cat := category.New(rules)

	switch cfg.DataBackend {
	case config.BackendMemory:
		mem := memory.New()
		slog.Info("Initialized memory backend", applog.FieldBackend, cfg.DataBackend)
		return services.NewExpenseService(mem, mem.Budgets(), cat), nil
	default:
		txns := flatfile.NewTransactionLog(cfg.TransactionsPath())
		budgets := flatfile.NewBudgetFile(cfg.BudgetsPath())
		slog.Info("Initialized flatfile backend",
			applog.FieldBackend, cfg.DataBackend,
			"transactions", cfg.TransactionsPath(),
			"budgets", cfg.BudgetsPath())
		return services.NewExpenseService(txns, budgets, cat), nil
	}
}
