package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"-42.1", "USD", "-$42.10"},
		{"1000", "EUR", "€1,000.00"},
		// JPY natively has zero fraction digits; the dashboard still shows two.
		{"1500", "JPY", "¥1,500.00"},
	}
	for _, tt := range tests {
		if got := Currency(decPtr(tt.amount), tt.code); got != tt.want {
			t.Fatalf("Currency(%s, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
}

func TestCurrencyMissing(t *testing.T) {
	if got := Currency(nil, "USD"); got != "N/A" {
		t.Fatalf("nil amount = %q, want N/A", got)
	}
}

func TestCurrencyUnknownCode(t *testing.T) {
	if got := Currency(decPtr("10"), "ZZZ"); got != "10.00 ZZZ" {
		t.Fatalf("unknown code = %q", got)
	}
}

func TestSignedCurrency(t *testing.T) {
	if got := SignedCurrency(decPtr("5"), "USD"); got != "+$5.00" {
		t.Fatalf("positive = %q", got)
	}
	if got := SignedCurrency(decPtr("-5"), "USD"); got != "-$5.00" {
		t.Fatalf("negative = %q", got)
	}
}

func TestQuantityStripsTrailingZeros(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.50000000", "1.5"},
		{"2.00000000", "2"},
		{"0.12345678", "0.12345678"},
		{"0.123456789", "0.12345679"},
		{"10", "10"},
	}
	for _, tt := range tests {
		if got := Quantity(dec(tt.in)); got != tt.want {
			t.Fatalf("Quantity(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuantityIdempotent(t *testing.T) {
	inputs := []string{"1.50000000", "2.00000000", "0.00000001", "123.456"}
	for _, in := range inputs {
		once := Quantity(dec(in))
		twice := Quantity(dec(once))
		if once != twice {
			t.Fatalf("Quantity not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decPtr("12.345")); got != "+12.35%" {
		t.Fatalf("percent = %q", got)
	}
	if got := Percent(decPtr("-3.2")); got != "-3.20%" {
		t.Fatalf("percent = %q", got)
	}
	if got := Percent(nil); got != "-" {
		t.Fatalf("nil percent = %q", got)
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"999", "999.00"},
		{"1234", "1.23K"},
		{"1234567", "1.23M"},
		{"8900000000", "8.90B"},
		{"2500000000000", "2.50T"},
		{"-1500000", "-1.50M"},
	}
	for _, tt := range tests {
		if got := Abbreviate(dec(tt.in)); got != tt.want {
			t.Fatalf("Abbreviate(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrecisionTiers(t *testing.T) {
	tests := []struct {
		min, max string
		want     int32
	}{
		{"0.001", "0.005", 6},
		{"0.02", "0.09", 4},
		{"0.2", "0.9", 3},
		{"10", "25", 2},
	}
	for _, tt := range tests {
		if got := Precision(dec(tt.min), dec(tt.max)); got != tt.want {
			t.Fatalf("Precision(%s, %s) = %d, want %d", tt.min, tt.max, got, tt.want)
		}
	}
}

func TestPrecisionFlatSeriesBump(t *testing.T) {
	// Spread is 0.05% of max: nearly flat, one tier up from the default 2.
	if got := Precision(dec("99.95"), dec("100.00")); got != 3 {
		t.Fatalf("flat series precision = %d, want 3", got)
	}
}
