package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"smartspend/internal/core"
)

func TestBudgetFileMissingIsEmpty(t *testing.T) {
	b := NewBudgetFile(filepath.Join(t.TempDir(), "budgets.json"))
	budgets, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if len(budgets) != 0 {
		t.Fatalf("expected empty mapping, got %v", budgets)
	}
}

func TestBudgetFileSetAndOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.json")
	b := NewBudgetFile(path)
	ctx := context.Background()

	if err := b.Set(ctx, "Food", core.Money{Cents: 10000}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "Transport", core.Money{Cents: 5000}); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Overwrite replaces, keeps no history.
	if err := b.Set(ctx, "Food", core.Money{Cents: 20000}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	budgets, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("expected 2 categories, got %v", budgets)
	}
	if budgets["Food"].Cents != 20000 || budgets["Transport"].Cents != 5000 {
		t.Fatalf("unexpected mapping: %v", budgets)
	}
}

func TestBudgetFileSetIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.json")
	b := NewBudgetFile(path)
	ctx := context.Background()

	if err := b.Set(ctx, "Bills", core.Money{Cents: 7500}); err != nil {
		t.Fatalf("set: %v", err)
	}
	once, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := b.Set(ctx, "Bills", core.Money{Cents: 7500}); err != nil {
		t.Fatalf("set again: %v", err)
	}
	twice, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(once) != string(twice) {
		t.Fatalf("second identical set changed the file:\n%s\nvs\n%s", once, twice)
	}
}

func TestBudgetFileRejectsInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.json")
	b := NewBudgetFile(path)
	ctx := context.Background()

	if err := b.Set(ctx, "", core.Money{Cents: 100}); err == nil {
		t.Fatalf("empty category must be rejected")
	}
	if err := b.Set(ctx, "Food", core.Money{Cents: -1}); err == nil {
		t.Fatalf("negative limit must be rejected")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("rejected input must leave no file behind")
	}
}

func TestBudgetFileMalformedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budgets.json")
	if err := os.WriteFile(path, []byte(`{"Food": "lots"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewBudgetFile(path).Load(context.Background()); err == nil {
		t.Fatalf("expected error for non-numeric limit")
	}

	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	b := NewBudgetFile(path)
	if _, err := b.Load(context.Background()); err == nil {
		t.Fatalf("expected error for malformed file")
	}
	// A failed load must also block the rewrite path.
	if err := b.Set(context.Background(), "Food", core.Money{Cents: 100}); err == nil {
		t.Fatalf("set over a corrupt file must fail")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "not json" {
		t.Fatalf("corrupt file was modified: %q", data)
	}
}

func TestBudgetFileReadsPrototypeNumbers(t *testing.T) {
	// The original prototype wrote plain JSON numbers.
	path := filepath.Join(t.TempDir(), "budgets.json")
	if err := os.WriteFile(path, []byte(`{"Food": 100, "Transport": 49.5}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	budgets, err := NewBudgetFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if budgets["Food"].Cents != 10000 || budgets["Transport"].Cents != 4950 {
		t.Fatalf("unexpected mapping: %v", budgets)
	}
}
