package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/core"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseYearMonth extracts year and month from query parameters,
// defaulting to the current date.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}
	return year, month
}

// parseDate parses a form date in YYYY-MM-DD format.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// categoryColors mirrors the prototype's pastel palette.
var categoryColors = map[string]string{
	"Food":          "#F6C8C2",
	"Shopping":      "#A3B8F9",
	"Bills":         "#FFD8A8",
	"Transport":     "#C6E7D2",
	"Entertainment": "#F0D7FF",
	"Other":         "#E6EEF8",
}

func colorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return "#DDE3EC"
}

// donutGradient builds a conic-gradient CSS value from the category
// slices of a month overview. Zero totals yield a flat placeholder.
func donutGradient(ov core.MonthOverview) string {
	if ov.Total.Cents <= 0 {
		return "conic-gradient(#EEF2F8 0% 100%)"
	}
	var parts []string
	var cum float64
	for _, ca := range ov.ByCategory {
		share := float64(ca.Amount.Cents) / float64(ov.Total.Cents) * 100
		from := cum
		cum += share
		parts = append(parts, fmt.Sprintf("%s %.2f%% %.2f%%", colorFor(ca.Name), from, cum))
	}
	return "conic-gradient(" + strings.Join(parts, ", ") + ")"
}

// barWidth scales one category amount against the month's largest,
// rounding to a visible percentage.
func barWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width > 0 && width < 2 { // ensure visibility for very small values
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}
