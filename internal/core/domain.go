package core

import (
	"errors"
	"strings"
	"time"
)

// CategoryOther is the fallback label for expenses no keyword rule matches.
// Every stored expense carries a category; the categorizer guarantees
// membership in the configured vocabulary or falls back to this one.
const CategoryOther = "Other"

type (
	// Date wraps time.Time so domain code can hang validation and
	// formatting helpers off a named type.
	Date struct {
		time.Time
	}

	// Money holds an amount in paise. All arithmetic happens on the
	// integer representation; rupees are a display concern.
	Money struct {
		Cents int64
	}

	// Expense is one recorded spending entry. Records are immutable
	// once appended; there is no edit or delete in the prototype.
	Expense struct {
		Date        Date
		Amount      Money
		Description string
		Category    string
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory      = errors.New("empty category")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// SameMonth reports whether d falls in the same calendar month as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// IsZero reports whether the amount is exactly zero paise.
func (m Money) IsZero() bool { return m.Cents == 0 }

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
