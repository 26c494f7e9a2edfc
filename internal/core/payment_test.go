package core

import "testing"

func TestIsValidPhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{" 9876543210 ", true},
		{"1234567890", false}, // must start 6-9
		{"98765", false},
		{"98765432100", false},
		{"abcdefghij", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidPhone(tc.in); got != tc.ok {
			t.Fatalf("IsValidPhone(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestIsValidUPI(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"name@bank", true},
		{"first.last-1@upi", true},
		{"x@bank", false}, // local part too short
		{"name@up", false},
		{"name@", false},
		{"@bank", false},
		{"plainstring", false},
	}
	for _, tc := range cases {
		if got := IsValidUPI(tc.in); got != tc.ok {
			t.Fatalf("IsValidUPI(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestPaymentValidateAndDescription(t *testing.T) {
	p := Payment{Recipient: "merchant@upi", Amount: Money{Cents: 5000}, Note: "Split dinner"}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if got := p.Description(); got != "Split dinner to merchant@upi" {
		t.Fatalf("unexpected description %q", got)
	}

	if err := (Payment{Recipient: "nope", Amount: Money{Cents: 100}}).Validate(); err != ErrInvalidRecipient {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
	if err := (Payment{Recipient: "name@bank", Amount: Money{Cents: 0}}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount for zero payment, got %v", err)
	}

	empty := Payment{Recipient: "9876543210", Amount: Money{Cents: 100}}
	if got := empty.Description(); got != "Payment via SmartSpend to 9876543210" {
		t.Fatalf("unexpected default note description %q", got)
	}
}
