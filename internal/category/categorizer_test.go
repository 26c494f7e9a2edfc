package category

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategorizeKeywordMatching(t *testing.T) {
	c := New(DefaultRules())
	cases := []struct {
		desc string
		want string
	}{
		{"Starbucks coffee", "Food"},
		{"COFFEE!!!", "Food"},
		{"lunch at canteen", "Food"},
		{"amazon order #1234", "Shopping"},
		{"Uber to airport", "Transport"},
		{"electricity bill march", "Bills"},
		{"Netflix subscription", "Entertainment"},
		{"mystery merchant", "Other"},
		{"", "Other"},
		{"   \t  ", "Other"},
	}
	for _, tc := range cases {
		if got := c.Categorize(tc.desc); got != tc.want {
			t.Fatalf("Categorize(%q) = %q, want %q", tc.desc, got, tc.want)
		}
	}
}

func TestCategorizeFirstRuleWins(t *testing.T) {
	c := New([]Rule{
		{Keyword: "uber", Category: "Transport"},
		{Keyword: "eats", Category: "Food"},
	})
	// "uber eats" matches both keywords; earliest listed rule decides.
	if got := c.Categorize("Uber Eats delivery"); got != "Transport" {
		t.Fatalf("expected earliest rule to win, got %q", got)
	}
}

func TestNewDropsBlankRules(t *testing.T) {
	c := New([]Rule{
		{Keyword: "  ", Category: "Food"},
		{Keyword: "tea", Category: ""},
		{Keyword: " Chai ", Category: "Food"},
	})
	if got := c.Categorize("morning chai"); got != "Food" {
		t.Fatalf("expected normalized keyword to match, got %q", got)
	}
	if got := c.Categorize("tea time"); got != "Other" {
		t.Fatalf("rule with empty category must be dropped, got %q", got)
	}
}

func TestCategoriesVocabulary(t *testing.T) {
	c := New(DefaultRules())
	cats := c.Categories()
	if len(cats) == 0 || cats[len(cats)-1] != "Other" {
		t.Fatalf("vocabulary must end with Other: %v", cats)
	}
	seen := map[string]bool{}
	for _, name := range cats {
		if seen[name] {
			t.Fatalf("duplicate category %q in %v", name, cats)
		}
		seen[name] = true
	}
	for _, want := range []string{"Food", "Shopping", "Bills", "Transport", "Entertainment"} {
		if !seen[want] {
			t.Fatalf("missing default category %q in %v", want, cats)
		}
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()

	// Missing file -> defaults
	rules, err := LoadRules(filepath.Join(dir, "nope.yaml"))
	if err != nil || len(rules) == 0 {
		t.Fatalf("missing file should yield defaults, got %v rules err=%v", len(rules), err)
	}

	// Valid file
	path := filepath.Join(dir, "rules.yaml")
	content := "- keyword: chai\n  category: Food\n- keyword: rickshaw\n  category: Transport\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	rules, err = LoadRules(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if len(rules) != 2 || rules[0].Keyword != "chai" || rules[1].Category != "Transport" {
		t.Fatalf("unexpected rules: %v", rules)
	}

	// Malformed file -> error
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected parse error for malformed rules file")
	}
}
