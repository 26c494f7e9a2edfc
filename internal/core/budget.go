package core

import (
	"errors"
	"strings"
	"time"
)

// BudgetStatus compares one category's spend for a month against its
// configured monthly limit.
type BudgetStatus struct {
	Spent Money
	Limit Money
	Over  bool
}

var (
	ErrEmptyBudgetCategory = errors.New("empty budget category")
	ErrNegativeLimit       = errors.New("budget limit cannot be negative")
)

// ValidateBudgetEntry checks a category/limit pair before it is written.
func ValidateBudgetEntry(category string, limit Money) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyBudgetCategory
	}
	if limit.Cents < 0 {
		return ErrNegativeLimit
	}
	return nil
}

// EvaluateBudgets sums expense amounts per category for now's calendar
// month and compares each budgeted category against its limit.
//
// Categories without a budget entry are absent from the result: no
// budget means no alert, never an implicit zero limit. The function is a
// pure reduction over both snapshots and carries no state between calls.
func EvaluateBudgets(expenses []Expense, budgets map[string]Money, now time.Time) map[string]BudgetStatus {
	spent := map[string]int64{}
	for _, e := range expenses {
		if !e.Date.SameMonth(now) {
			continue
		}
		spent[e.Category] += e.Amount.Cents
	}

	out := make(map[string]BudgetStatus, len(budgets))
	for category, limit := range budgets {
		s := Money{Cents: spent[category]}
		out[category] = BudgetStatus{
			Spent: s,
			Limit: limit,
			Over:  s.Cents > limit.Cents,
		}
	}
	return out
}

// RemainingTotal sums what is left under every budget for the month,
// clamping overspent categories to zero (the dashboard's Remaining card).
func RemainingTotal(statuses map[string]BudgetStatus) Money {
	var total int64
	for _, st := range statuses {
		if rest := st.Limit.Cents - st.Spent.Cents; rest > 0 {
			total += rest
		}
	}
	return Money{Cents: total}
}

// ActiveBudgetTotal sums limits that are actually set (> 0).
func ActiveBudgetTotal(budgets map[string]Money) Money {
	var total int64
	for _, limit := range budgets {
		if limit.Cents > 0 {
			total += limit.Cents
		}
	}
	return Money{Cents: total}
}
