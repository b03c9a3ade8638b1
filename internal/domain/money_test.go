package domain

import (
	"errors"
	"testing"
)

func TestDollarsToCents_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, cents := range []int64{0, 1, 99, 100, 1250, 99999, 123456789} {
		if got := DollarsToCents(CentsToDollars(cents)); got != cents {
			t.Errorf("round trip %d: got %d", cents, got)
		}
	}
}

func TestDollarsToCents_Rounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dollars float64
		want    int64
	}{
		{12.50, 1250},
		{0.005, 1},  // rounds to nearest cent
		{0.004, 0},
		{19.99, 1999},
		{0, 0},
	}
	for _, tt := range tests {
		if got := DollarsToCents(tt.dollars); got != tt.want {
			t.Errorf("DollarsToCents(%v) = %d, want %d", tt.dollars, got, tt.want)
		}
	}
}

func TestParseMoneyInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"plain decimal", "12.50", 1250, false},
		{"integer", "7", 700, false},
		{"zero", "0", 0, false},
		{"whitespace", "  3.25 ", 325, false},
		{"negative", "-5", 0, true},
		{"nan", "NaN", 0, true},
		{"infinity", "Inf", 0, true},
		{"garbage", "twelve", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoneyInput(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatMoney_FallsBackOnUnknownCode(t *testing.T) {
	t.Parallel()

	// Unknown codes must not panic; exact rendering is locale-dependent,
	// so only check non-emptiness.
	if got := FormatMoney(1250, "???"); got == "" {
		t.Error("FormatMoney returned empty string for unknown code")
	}
	if got := FormatMoney(1250, "EUR"); got == "" {
		t.Error("FormatMoney returned empty string for EUR")
	}
}

func TestValidCurrencyCode(t *testing.T) {
	t.Parallel()

	if !ValidCurrencyCode("USD") || !ValidCurrencyCode("EUR") {
		t.Error("known codes reported invalid")
	}
	if ValidCurrencyCode("DOLLARS") || ValidCurrencyCode("") {
		t.Error("bogus codes reported valid")
	}
}
