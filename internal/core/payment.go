package core

import (
	"errors"
	"regexp"
	"strings"
)

// Simulated UPI payments: the recipient is either a 10-digit Indian
// mobile number or a UPI ID such as name@bank. Nothing leaves the
// process; a valid payment only becomes a recorded expense.

var (
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	upiPattern   = regexp.MustCompile(`^[.\w-]{2,}@[a-zA-Z]{3,}$`)

	ErrInvalidRecipient = errors.New("recipient must be a valid phone number or UPI ID")
)

// Payment is a simulated outgoing UPI payment.
type Payment struct {
	Recipient string
	Amount    Money
	Note      string
}

// IsValidPhone reports whether s looks like an Indian mobile number.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// IsValidUPI reports whether s looks like a UPI virtual payment address.
func IsValidUPI(s string) bool {
	return upiPattern.MatchString(strings.TrimSpace(s))
}

func (p Payment) Validate() error {
	r := strings.TrimSpace(p.Recipient)
	if !IsValidPhone(r) && !IsValidUPI(r) {
		return ErrInvalidRecipient
	}
	if p.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Description combines note and recipient into the free text the
// categorizer sees and the transaction log stores.
func (p Payment) Description() string {
	note := strings.TrimSpace(p.Note)
	if note == "" {
		note = "Payment via SmartSpend"
	}
	return note + " to " + strings.TrimSpace(p.Recipient)
}
