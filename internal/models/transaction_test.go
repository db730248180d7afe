package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitAdjustedThreshold(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		adjusted string
		want     bool
	}{
		{"identical", "10", "10", false},
		{"within epsilon", "10.0001", "10", false},
		{"at epsilon", "10", "9.9999", false},
		{"just past epsilon", "10.0002", "10", true},
		{"real split", "10", "20", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{
				Quantity:         decimal.RequireFromString(tt.qty),
				AdjustedQuantity: decimal.RequireFromString(tt.adjusted),
			}
			if got := tx.SplitAdjusted(); got != tt.want {
				t.Fatalf("SplitAdjusted(%s vs %s) = %v, want %v", tt.qty, tt.adjusted, got, tt.want)
			}
		})
	}
}

func TestTransactionTotal(t *testing.T) {
	price := decimal.RequireFromString("170.50")
	fees := decimal.RequireFromString("1.00")

	tx := Transaction{Quantity: decimal.RequireFromString("10"), Price: &price, Fees: &fees}
	if want := decimal.RequireFromString("1706"); !tx.Total().Equal(want) {
		t.Fatalf("total = %s, want %s", tx.Total(), want)
	}

	noPrice := Transaction{Quantity: decimal.RequireFromString("10"), Fees: &fees}
	if !noPrice.Total().IsZero() {
		t.Fatalf("total without price = %s, want 0", noPrice.Total())
	}
}

func TestHistoryPointSentinel(t *testing.T) {
	sentinel := PortfolioHistoryPoint{}
	if !sentinel.Sentinel() {
		t.Fatalf("zero value/invested should be sentinel")
	}
	live := PortfolioHistoryPoint{Value: decimal.RequireFromString("100"), Invested: decimal.RequireFromString("80")}
	if live.Sentinel() {
		t.Fatalf("funded point flagged as sentinel")
	}
}
