package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"smartspend/internal/core"
	applog "smartspend/internal/log"
)

var (
	reportYear  int
	reportMonth int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a monthly spending report",
	Long: `Print the month's spending by category and the state of every
configured budget, straight from the backing files.

Example:
  smartspend report
  smartspend report --year 2024 --month 3`,
	Run: runReport,
}

func init() {
	now := time.Now()
	reportCmd.Flags().IntVar(&reportYear, "year", now.Year(), "report year")
	reportCmd.Flags().IntVar(&reportMonth, "month", int(now.Month()), "report month (1-12)")
}

func runReport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if reportMonth < 1 || reportMonth > 12 {
		fmt.Fprintf(os.Stderr, "Error: invalid month %d\n", reportMonth)
		os.Exit(1)
	}

	svc, err := buildService(cfg)
	if err != nil {
		slog.Error("Failed to initialize service", applog.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	ov, items, err := svc.MonthOverview(ctx, reportYear, reportMonth)
	if err != nil {
		slog.Error("Report failed", applog.FieldError, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n=== %s %d ===\n", time.Month(reportMonth), reportYear)
	fmt.Printf("Transactions: %d\n", len(items))
	fmt.Printf("Total spent:  %s\n\n", ov.Total)
	for _, ca := range ov.ByCategory {
		fmt.Printf("  %-14s %s\n", ca.Name, ca.Amount)
	}

	// Budgets are evaluated against the requested month, not "now".
	statuses, err := svc.AlertsFor(ctx, time.Date(reportYear, time.Month(reportMonth), 1, 0, 0, 0, 0, time.Local))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(statuses) == 0 {
		fmt.Println("\nNo budgets configured.")
		return
	}

	names := make([]string, 0, len(statuses))
	for name := range statuses {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nBudgets:")
	for _, name := range names {
		st := statuses[name]
		mark := "ok"
		if st.Over {
			mark = "OVER by " + core.FormatRupees(st.Spent.Cents-st.Limit.Cents)
		}
		fmt.Printf("  %-14s %s of %s  [%s]\n", name, st.Spent, st.Limit, mark)
	}
	fmt.Println()
}
