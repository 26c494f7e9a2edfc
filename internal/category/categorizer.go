// Package category maps free-text expense descriptions to spending
// categories via an ordered keyword table. Matching is case-insensitive
// substring search; the first rule that matches wins and unmatched text
// falls back to "Other". The table is injected at construction so the
// vocabulary can be swapped or tested independently of the matcher.
package category

import (
	"strings"

	"smartspend/internal/core"
)

// Rule binds one lowercase keyword to a category label. Rule order is
// significant: earlier rules shadow later ones.
type Rule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// Categorizer is a stateless keyword classifier.
type Categorizer struct {
	rules []Rule
}

// New builds a Categorizer from an ordered rule list. Keywords are
// normalized to lowercase; blank rules are dropped.
func New(rules []Rule) *Categorizer {
	clean := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		cat := strings.TrimSpace(r.Category)
		if kw == "" || cat == "" {
			continue
		}
		clean = append(clean, Rule{Keyword: kw, Category: cat})
	}
	return &Categorizer{rules: clean}
}

// Categorize returns the category of the first rule whose keyword occurs
// in the description, or "Other" when nothing matches. It never fails:
// empty input is simply unmatched.
func (c *Categorizer) Categorize(description string) string {
	text := strings.ToLower(description)
	for _, r := range c.rules {
		if strings.Contains(text, r.Keyword) {
			return r.Category
		}
	}
	return core.CategoryOther
}

// Categories returns the distinct labels the rule table can produce,
// in first-appearance order, with "Other" always last.
func (c *Categorizer) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range c.rules {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return append(out, core.CategoryOther)
}

// DefaultRules mirrors the prototype's keyword table. Categories: Food,
// Shopping, Bills, Transport, Entertainment.
func DefaultRules() []Rule {
	table := []struct {
		category string
		keywords []string
	}{
		{"Food", []string{"restaurant", "dine", "cafe", "burger", "pizza", "food", "canteen", "coffee", "starbucks", "tea", "snack", "lunch", "dinner"}},
		{"Shopping", []string{"mall", "amazon", "flipkart", "shopping", "shop", "store", "clothes", "shoes", "cart"}},
		{"Bills", []string{"bill", "electricity", "water", "phone", "dth", "grocery", "rent", "internet"}},
		{"Transport", []string{"uber", "ola", "taxi", "bus", "train", "fuel", "petrol", "metro", "cab", "auto"}},
		{"Entertainment", []string{"movie", "netflix", "spotify", "concert", "game", "cinema", "hotstar"}},
	}
	var rules []Rule
	for _, row := range table {
		for _, kw := range row.keywords {
			rules = append(rules, Rule{Keyword: kw, Category: row.category})
		}
	}
	return rules
}
