// Package memory holds both stores in process memory. It backs tests
// and the DATA_BACKEND=memory development mode, where nothing survives
// a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"smartspend/internal/core"
)

// Store implements store.TransactionStore and store.BudgetStore.
type Store struct {
	mu      sync.Mutex
	items   []core.Expense
	budgets map[string]core.Money
}

func New() *Store {
	return &Store{budgets: map[string]core.Money{}}
}

// Load returns a copy of the recorded expenses in insertion order.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Append stores the expense and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// LoadBudgets returns a copy of the category -> limit mapping.
func (s *Store) LoadBudgets(_ context.Context) (map[string]core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]core.Money, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out, nil
}

// SetBudget inserts or overwrites one category's limit.
func (s *Store) SetBudget(_ context.Context, category string, limit core.Money) error {
	if err := core.ValidateBudgetEntry(category, limit); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[category] = limit
	return nil
}

// Budgets adapts the store to the store.BudgetStore port, whose Load
// name collides with the transaction side.
func (s *Store) Budgets() *BudgetView { return &BudgetView{s} }

// BudgetView exposes the budget half of the store.
type BudgetView struct{ s *Store }

func (v *BudgetView) Load(ctx context.Context) (map[string]core.Money, error) {
	return v.s.LoadBudgets(ctx)
}

func (v *BudgetView) Set(ctx context.Context, category string, limit core.Money) error {
	return v.s.SetBudget(ctx, category, limit)
}
