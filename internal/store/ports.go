// Package store defines the outbound ports for the two persisted
// snapshots: the transaction log and the budget map. Backends load the
// whole snapshot on read and rewrite the whole file on mutation, which
// is a known scalability limit accepted at prototype scale.
package store

import (
	"context"

	"smartspend/internal/core"
)

type (
	// TransactionStore is the append-only expense log.
	TransactionStore interface {
		// Load returns every recorded expense in insertion order.
		// A missing backing file is the first-run case and yields an
		// empty sequence, not an error.
		Load(ctx context.Context) ([]core.Expense, error)
		// Append validates and persists one expense at the end of the
		// log, returning a backend-specific row reference.
		Append(ctx context.Context, e core.Expense) (rowRef string, err error)
	}

	// BudgetStore maps category names to monthly limits.
	BudgetStore interface {
		// Load returns the current category -> limit mapping, empty
		// when the backing file does not exist yet.
		Load(ctx context.Context) (map[string]core.Money, error)
		// Set inserts or overwrites one category's monthly limit.
		Set(ctx context.Context, category string, limit core.Money) error
	}
)
