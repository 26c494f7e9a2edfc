// Package flatfile persists the SmartSpend stores as local flat files:
// a CSV transaction log and a JSON budget map. Every mutation re-reads
// the current snapshot and atomically rewrites the whole file, so the
// on-disk state always matches one in-memory sequence. One process at a
// time; there is no cross-process locking.
package flatfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"smartspend/internal/core"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout = "2006-01-02"
)

var transactionHeader = []string{"date", "amount", "description", "category"}

// TransactionLog is a CSV-backed store.TransactionStore.
type TransactionLog struct {
	mu   sync.Mutex
	path string
}

// NewTransactionLog returns a log backed by the CSV file at path. The
// file is created lazily on first append.
func NewTransactionLog(path string) *TransactionLog {
	return &TransactionLog{path: path}
}

// Load reads the full backing file into memory, preserving record order.
func (l *TransactionLog) Load(ctx context.Context) ([]core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(ctx)
}

func (l *TransactionLog) loadLocked(ctx context.Context) ([]core.Expense, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // first run, nothing recorded yet
		}
		return nil, fmt.Errorf("open transaction log %s: %w", l.path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read transaction log %s: %w", l.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	out := make([]core.Expense, 0, len(rows)-1)
	for i, rec := range rows[1:] { // skip header
		e, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("transaction log %s line %d: %w", l.path, i+2, err)
		}
		out = append(out, e)
	}

	slog.DebugContext(ctx, "Transaction log loaded", "path", l.path, "count", len(out))
	return out, nil
}

// Append validates the record, re-reads the existing sequence, adds the
// record at the end and rewrites the whole file. The row reference is
// the 1-based position in the log.
func (l *TransactionLog) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.loadLocked(ctx)
	if err != nil {
		return "", err
	}
	items = append(items, e)

	if err := l.rewriteLocked(items); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Expense appended",
		"path", l.path,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"row", len(items))
	return "csv:" + strconv.Itoa(len(items)), nil
}

// rewriteLocked writes the whole sequence to a temp file in the target
// directory and renames it over the log.
func (l *TransactionLog) rewriteLocked(items []core.Expense) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".expenses-*.csv")
	if err != nil {
		return fmt.Errorf("create temp transaction log: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(transactionHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range items {
		rec := []string{
			e.Date.Format(dateTimeLayout),
			decimal.NewFromInt(e.Amount.Cents).Div(decimal.NewFromInt(100)).StringFixed(2),
			e.Description,
			e.Category,
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush transaction log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp transaction log: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("replace transaction log %s: %w", l.path, err)
	}
	return nil
}

func parseRecord(rec []string) (core.Expense, error) {
	if len(rec) < 4 {
		return core.Expense{}, fmt.Errorf("expected 4 fields, got %d", len(rec))
	}

	ts, err := parseDate(rec[0])
	if err != nil {
		return core.Expense{}, err
	}

	amt, err := decimal.NewFromString(rec[1])
	if err != nil {
		return core.Expense{}, fmt.Errorf("invalid amount %q: %w", rec[1], err)
	}
	cents := amt.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	e := core.Expense{
		Date:        core.Date{Time: ts},
		Amount:      core.Money{Cents: cents},
		Description: rec[2],
		Category:    rec[3],
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// parseDate accepts the stored timestamp format and, for rows written
// by hand or by the original prototype, a bare calendar date.
func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(dateTimeLayout, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return ts, nil
}
