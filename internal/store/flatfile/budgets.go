package flatfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"smartspend/internal/core"
)

// BudgetFile is a JSON-backed store.BudgetStore. The file holds a flat
// object of category name to monthly limit, e.g. {"Food": 1500.00}.
type BudgetFile struct {
	mu   sync.Mutex
	path string
}

func NewBudgetFile(path string) *BudgetFile {
	return &BudgetFile{path: path}
}

// Load reads the whole mapping; a missing file yields an empty map.
func (b *BudgetFile) Load(ctx context.Context) (map[string]core.Money, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadLocked(ctx)
}

func (b *BudgetFile) loadLocked(ctx context.Context) (map[string]core.Money, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]core.Money{}, nil
		}
		return nil, fmt.Errorf("read budget file %s: %w", b.path, err)
	}

	var raw map[string]json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse budget file %s: %w", b.path, err)
	}

	out := make(map[string]core.Money, len(raw))
	for category, num := range raw {
		limit, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("budget file %s: invalid limit %q for %q", b.path, num, category)
		}
		cents := limit.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if cents < 0 {
			return nil, fmt.Errorf("budget file %s: negative limit for %q", b.path, category)
		}
		out[category] = core.Money{Cents: cents}
	}

	slog.DebugContext(ctx, "Budget file loaded", "path", b.path, "categories", len(out))
	return out, nil
}

// Set validates the entry, overwrites the limit for one category and
// rewrites the whole mapping. Setting the same value twice is a no-op
// for the stored bytes.
func (b *BudgetFile) Set(ctx context.Context, category string, limit core.Money) error {
	if err := core.ValidateBudgetEntry(category, limit); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	budgets, err := b.loadLocked(ctx)
	if err != nil {
		return err
	}
	budgets[category] = limit

	if err := b.rewriteLocked(budgets); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget set",
		"path", b.path, "category", category, "limit_cents", limit.Cents)
	return nil
}

func (b *BudgetFile) rewriteLocked(budgets map[string]core.Money) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}

	raw := make(map[string]json.Number, len(budgets))
	for category, limit := range budgets {
		raw[category] = json.Number(decimal.NewFromInt(limit.Cents).Div(decimal.NewFromInt(100)).StringFixed(2))
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode budget file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".budgets-*.json")
	if err != nil {
		return fmt.Errorf("create temp budget file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write budget file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp budget file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace budget file %s: %w", b.path, err)
	}
	return nil
}
