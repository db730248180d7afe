package derive

import (
	"testing"

	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: 1, Symbol: "aapl", Type: "BUY", TxDate: "2024-03-05", Quantity: dec("10"), AdjustedQuantity: dec("10"), Price: decPtr("170.50"), Fees: decPtr("1.00")},
		{ID: 2, Symbol: "MSFT", Type: "SELL", TxDate: "2024-01-12", Quantity: dec("3"), AdjustedQuantity: dec("3"), Price: decPtr("390.00")},
		{ID: 3, Symbol: "Voo", Type: "BUY", TxDate: "2024-03-05", Quantity: dec("2"), AdjustedQuantity: dec("2")},
		{ID: 4, Symbol: "btc", Type: "BUY", TxDate: "2023-11-30", Quantity: dec("0.25"), AdjustedQuantity: dec("0.25"), Price: decPtr("37000")},
	}
}

func TestSortTransactionsDateReversible(t *testing.T) {
	s := NewSorter("en")
	txs := testTransactions()

	desc := SortTransactions(txs, TxKeyDate, Desc, s)
	asc := SortTransactions(txs, TxKeyDate, Asc, s)

	if len(desc) != len(asc) {
		t.Fatalf("length mismatch")
	}
	for i := range desc {
		mirror := asc[len(asc)-1-i]
		if desc[i].ID != mirror.ID {
			t.Fatalf("desc[%d].ID = %d, asc mirror = %d", i, desc[i].ID, mirror.ID)
		}
	}
	if desc[0].ID != 3 || desc[1].ID != 1 {
		// 2024-03-05 ties break on ID, descending.
		t.Fatalf("unexpected head order: %d, %d", desc[0].ID, desc[1].ID)
	}
}

func TestSortTransactionsDoesNotMutateInput(t *testing.T) {
	s := NewSorter("en")
	txs := testTransactions()
	origFirst := txs[0].ID
	_ = SortTransactions(txs, TxKeyDate, Asc, s)
	if txs[0].ID != origFirst {
		t.Fatalf("input slice mutated")
	}
}

func TestSortTransactionsSymbolCaseInsensitive(t *testing.T) {
	s := NewSorter("en")
	out := SortTransactions(testTransactions(), TxKeySymbol, Asc, s)
	got := []string{out[0].Symbol, out[1].Symbol, out[2].Symbol, out[3].Symbol}
	want := []string{"aapl", "btc", "MSFT", "Voo"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortTransactionsTotalMissingPriceIsZero(t *testing.T) {
	s := NewSorter("en")
	out := SortTransactions(testTransactions(), TxKeyTotal, Asc, s)
	// ID 3 has no price: total 0, lowest.
	if out[0].ID != 3 {
		t.Fatalf("first by total asc = %d, want 3", out[0].ID)
	}
}

func TestSortTransactionsNullPriceAlwaysLast(t *testing.T) {
	s := NewSorter("en")
	for _, dir := range []Direction{Asc, Desc} {
		out := SortTransactions(testTransactions(), TxKeyPrice, dir, s)
		if out[len(out)-1].ID != 3 {
			t.Fatalf("dir %s: null price row not last (got %d)", dir, out[len(out)-1].ID)
		}
	}
}

func TestSortPositionsWalletPct(t *testing.T) {
	s := NewSorter("en")
	positions := []models.Position{
		{AssetID: 1, Symbol: "A", MarketValue: decPtr("250")},
		{AssetID: 2, Symbol: "B", MarketValue: nil},
		{AssetID: 3, Symbol: "C", MarketValue: decPtr("750")},
	}
	out := SortPositions(positions, PosKeyWalletPct, Desc, s)
	if out[0].AssetID != 3 || out[1].AssetID != 1 || out[2].AssetID != 2 {
		t.Fatalf("wallet_pct desc order = %d,%d,%d", out[0].AssetID, out[1].AssetID, out[2].AssetID)
	}
}

func TestWalletPercentsSumToHundred(t *testing.T) {
	positions := []models.Position{
		{AssetID: 1, MarketValue: decPtr("123.45")},
		{AssetID: 2, MarketValue: decPtr("876.55")},
		{AssetID: 3, MarketValue: decPtr("0.01")},
	}
	pcts := WalletPercents(positions)
	sum := decimal.Zero
	for _, p := range pcts {
		sum = sum.Add(p)
	}
	eps := dec("0.0000001")
	if sum.Sub(dec("100")).Abs().GreaterThan(eps) {
		t.Fatalf("wallet percents sum = %s, want 100", sum)
	}
}

func TestWalletPercentsZeroDenominator(t *testing.T) {
	positions := []models.Position{
		{AssetID: 1, MarketValue: nil},
		{AssetID: 2, MarketValue: nil},
	}
	for _, p := range WalletPercents(positions) {
		if !p.IsZero() {
			t.Fatalf("expected all-zero percents, got %s", p)
		}
	}
}

func TestToggle(t *testing.T) {
	st := SortState{Key: TxKeyDate, Dir: Desc}
	st = Toggle(st, TxKeyDate)
	if st.Dir != Asc {
		t.Fatalf("same-key toggle should flip to asc")
	}
	st = Toggle(st, TxKeySymbol)
	if st.Key != TxKeySymbol || st.Dir != Desc {
		t.Fatalf("new key should reset to desc, got %+v", st)
	}
}

func TestSortUnknownKeyReturnsCopy(t *testing.T) {
	s := NewSorter("en")
	txs := testTransactions()
	out := SortTransactions(txs, "bogus", Desc, s)
	if len(out) != len(txs) {
		t.Fatalf("length changed")
	}
	for i := range out {
		if out[i].ID != txs[i].ID {
			t.Fatalf("order changed for unknown key")
		}
	}
}
