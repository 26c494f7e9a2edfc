// Package services orchestrates the SmartSpend core: categorization,
// the two flat-file stores and the monthly budget evaluation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"smartspend/internal/category"
	"smartspend/internal/core"
	"smartspend/internal/store"
)

// ExpenseService composes the categorizer and the two stores behind the
// operations the presentation layer calls. It holds no state of its
// own; every call re-reads the current snapshots.
type ExpenseService struct {
	transactions store.TransactionStore
	budgets      store.BudgetStore
	categorizer  *category.Categorizer
	now          func() time.Time
}

func NewExpenseService(tx store.TransactionStore, budgets store.BudgetStore, cat *category.Categorizer) *ExpenseService {
	return &ExpenseService{
		transactions: tx,
		budgets:      budgets,
		categorizer:  cat,
		now:          time.Now,
	}
}

// Categories exposes the categorizer's vocabulary for UI selects.
func (s *ExpenseService) Categories() []string {
	return s.categorizer.Categories()
}

// ExpenseInput is a submitted expense before categorization. A zero
// Date means "now"; an empty Category requests auto-categorization.
type ExpenseInput struct {
	Date        time.Time
	Amount      core.Money
	Description string
	Category    string
}

// RecordExpense categorizes and appends one expense. Validation happens
// before any write; a rejected input leaves the log untouched.
func (s *ExpenseService) RecordExpense(ctx context.Context, in ExpenseInput) (core.Expense, string, error) {
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	cat := in.Category
	if cat == "" {
		cat = s.categorizer.Categorize(in.Description)
	}

	e := core.Expense{
		Date:        core.Date{Time: date},
		Amount:      in.Amount,
		Description: in.Description,
		Category:    cat,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, "", err
	}

	ref, err := s.transactions.Append(ctx, e)
	if err != nil {
		return core.Expense{}, "", fmt.Errorf("append expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"ref", ref,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, ref, nil
}

// RecordPayment validates a simulated UPI payment and records it as a
// regular expense dated now. No money moves anywhere.
func (s *ExpenseService) RecordPayment(ctx context.Context, p core.Payment) (core.Expense, string, error) {
	if err := p.Validate(); err != nil {
		return core.Expense{}, "", err
	}
	return s.RecordExpense(ctx, ExpenseInput{
		Amount:      p.Amount,
		Description: p.Description(),
	})
}

// SetBudget inserts or overwrites one category's monthly limit.
func (s *ExpenseService) SetBudget(ctx context.Context, cat string, limit core.Money) error {
	if err := s.budgets.Set(ctx, cat, limit); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Budget updated", "category", cat, "limit_cents", limit.Cents)
	return nil
}

// Alerts re-reads both stores and evaluates the current month.
func (s *ExpenseService) Alerts(ctx context.Context) (map[string]core.BudgetStatus, error) {
	return s.AlertsFor(ctx, s.now())
}

// AlertsFor evaluates the calendar month containing at.
func (s *ExpenseService) AlertsFor(ctx context.Context, at time.Time) (map[string]core.BudgetStatus, error) {
	expenses, err := s.transactions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := s.budgets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	return core.EvaluateBudgets(expenses, budgets, at), nil
}

// MonthOverview aggregates one calendar month and returns the matching
// expenses in log order for the detail list.
func (s *ExpenseService) MonthOverview(ctx context.Context, year, month int) (core.MonthOverview, []core.Expense, error) {
	expenses, err := s.transactions.Load(ctx)
	if err != nil {
		return core.MonthOverview{}, nil, fmt.Errorf("load transactions: %w", err)
	}
	var items []core.Expense
	for _, e := range expenses {
		if e.Date.Year() == year && int(e.Date.Month()) == month {
			items = append(items, e)
		}
	}
	return core.OverviewFor(expenses, year, month), items, nil
}

// Dashboard is the full snapshot the UI renders from.
type Dashboard struct {
	Now      time.Time
	Overview core.MonthOverview
	Statuses map[string]core.BudgetStatus
	Budgets  map[string]core.Money

	TotalSpent    core.Money
	MonthSpent    core.Money
	ActiveBudgets core.Money
	Remaining     core.Money

	Recent []core.Expense
}

const recentLimit = 10

// BuildDashboard loads both stores once and derives every metric the
// dashboard shows. Nothing is cached between calls.
func (s *ExpenseService) BuildDashboard(ctx context.Context) (Dashboard, error) {
	expenses, err := s.transactions.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := s.budgets.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load budgets: %w", err)
	}

	now := s.now()
	year, month := core.CurrentMonth(now)
	overview := core.OverviewFor(expenses, year, month)
	statuses := core.EvaluateBudgets(expenses, budgets, now)

	d := Dashboard{
		Now:           now,
		Overview:      overview,
		Statuses:      statuses,
		Budgets:       budgets,
		TotalSpent:    core.TotalSpent(expenses),
		MonthSpent:    overview.Total,
		ActiveBudgets: core.ActiveBudgetTotal(budgets),
		Remaining:     core.RemainingTotal(statuses),
		Recent:        recentExpenses(expenses, recentLimit),
	}
	return d, nil
}

// recentExpenses returns the newest entries first, ties broken by
// position in the log (later rows are newer).
func recentExpenses(expenses []core.Expense, limit int) []core.Expense {
	idx := make([]int, len(expenses))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := expenses[idx[a]].Date.Time, expenses[idx[b]].Date.Time
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return idx[a] > idx[b]
	})
	if limit > len(idx) {
		limit = len(idx)
	}
	out := make([]core.Expense, 0, limit)
	for _, i := range idx[:limit] {
		out = append(out, expenses[i])
	}
	return out
}
