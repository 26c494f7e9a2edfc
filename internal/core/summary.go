package core

import (
	"sort"
	"time"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthOverview is a compact summary for a specific year+month.
type MonthOverview struct {
	Year       int
	Month      int // 1-12
	Total      Money
	ByCategory []CategoryAmount
}

// OverviewFor reduces an expense sequence to the overview of one calendar
// month. Expenses outside the month are ignored but never touched; the
// result is sorted by descending amount so the largest slice leads.
func OverviewFor(expenses []Expense, year, month int) MonthOverview {
	ov := MonthOverview{Year: year, Month: month}
	byCat := map[string]int64{}
	for _, e := range expenses {
		if e.Date.Year() != year || int(e.Date.Month()) != month {
			continue
		}
		ov.Total.Cents += e.Amount.Cents
		byCat[e.Category] += e.Amount.Cents
	}
	for name, cents := range byCat {
		ov.ByCategory = append(ov.ByCategory, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(ov.ByCategory, func(i, j int) bool {
		if ov.ByCategory[i].Amount.Cents != ov.ByCategory[j].Amount.Cents {
			return ov.ByCategory[i].Amount.Cents > ov.ByCategory[j].Amount.Cents
		}
		return ov.ByCategory[i].Name < ov.ByCategory[j].Name
	})
	return ov
}

// TotalSpent sums every recorded expense regardless of month.
func TotalSpent(expenses []Expense) Money {
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	return Money{Cents: total}
}

// SpentByCategory sums all expenses per category across the whole log,
// mirroring the dashboard's all-time breakdown.
func SpentByCategory(expenses []Expense) map[string]Money {
	out := map[string]Money{}
	for _, e := range expenses {
		m := out[e.Category]
		m.Cents += e.Amount.Cents
		out[e.Category] = m
	}
	return out
}

// CurrentMonth is a convenience for callers that evaluate "now".
func CurrentMonth(now time.Time) (year, month int) {
	return now.Year(), int(now.Month())
}
