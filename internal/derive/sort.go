// Package derive holds the pure view-state derivations behind the dashboard
// tables: sorting, wallet percentages and related aggregates. Rows come from
// the backend API, so everything here works on in-memory slices and never
// mutates its input.
package derive

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"folioboard/internal/models"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) Direction {
	if s == string(Asc) {
		return Asc
	}
	return Desc
}

// SortState is a table's current sort selection.
type SortState struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// Toggle applies the header-click rule: clicking the active key flips the
// direction, picking a new key resets to descending.
func Toggle(cur SortState, key string) SortState {
	if cur.Key == key {
		if cur.Dir == Desc {
			return SortState{Key: key, Dir: Asc}
		}
		return SortState{Key: key, Dir: Desc}
	}
	return SortState{Key: key, Dir: Desc}
}

// Sorter compares strings case-insensitively under a locale.
type Sorter struct {
	col *collate.Collator
}

func NewSorter(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Sorter{col: collate.New(tag, collate.IgnoreCase)}
}

func (s *Sorter) compareStrings(a, b string) int {
	return s.col.CompareString(a, b)
}

// Position table sort keys.
const (
	PosKeySymbol        = "symbol"
	PosKeyName          = "name"
	PosKeyQuantity      = "quantity"
	PosKeyAvgCost       = "avg_cost"
	PosKeyCurrentPrice  = "current_price"
	PosKeyMarketValue   = "market_value"
	PosKeyCostBasis     = "cost_basis"
	PosKeyUnrealized    = "unrealized_pnl"
	PosKeyUnrealizedPct = "unrealized_pnl_pct"
	PosKeyDailyChange   = "daily_change_pct"
	PosKeyWalletPct     = "wallet_pct"
	PosKeyAssetType     = "asset_type"
)

// Transaction table sort keys.
const (
	TxKeyDate      = "tx_date"
	TxKeyType      = "type"
	TxKeySymbol    = "symbol"
	TxKeyQuantity  = "quantity"
	TxKeyPrice     = "price"
	TxKeyFees      = "fees"
	TxKeyTotal     = "total"
	TxKeyPortfolio = "portfolio"
)

// Null handling is fixed per field: derived composite values treat missing
// operands as zero, raw nullable numerics always sort last in either
// direction.
type nullPolicy int

const (
	nullsZero nullPolicy = iota
	nullsLast
)

type posKeySpec struct {
	str   func(models.Position) string
	num   func(models.Position) *decimal.Decimal
	nulls nullPolicy
}

var positionKeys = map[string]posKeySpec{
	PosKeySymbol:    {str: func(p models.Position) string { return p.Symbol }},
	PosKeyName:      {str: func(p models.Position) string { return p.Name }},
	PosKeyAssetType: {str: func(p models.Position) string { return p.AssetType }},
	PosKeyQuantity: {num: func(p models.Position) *decimal.Decimal { return &p.Quantity }},
	PosKeyAvgCost:  {num: func(p models.Position) *decimal.Decimal { return &p.AvgCost }},
	PosKeyCostBasis: {num: func(p models.Position) *decimal.Decimal { return &p.CostBasis }},
	PosKeyCurrentPrice: {num: func(p models.Position) *decimal.Decimal { return p.CurrentPrice }, nulls: nullsLast},
	PosKeyMarketValue:  {num: func(p models.Position) *decimal.Decimal { return p.MarketValue }, nulls: nullsLast},
	PosKeyUnrealized:   {num: func(p models.Position) *decimal.Decimal { return p.UnrealizedPnL }, nulls: nullsLast},
	PosKeyUnrealizedPct: {num: func(p models.Position) *decimal.Decimal { return p.UnrealizedPnLPct }, nulls: nullsLast},
	PosKeyDailyChange:   {num: func(p models.Position) *decimal.Decimal { return p.DailyChangePct }, nulls: nullsLast},
}

// SortPositions returns a new slice ordered by the given key. Unknown keys
// return an unchanged copy. wallet_pct is virtual: computed from market
// values, never stored on the row.
func SortPositions(items []models.Position, key string, dir Direction, s *Sorter) []models.Position {
	out := make([]models.Position, len(items))
	copy(out, items)

	if key == PosKeyWalletPct {
		pcts := WalletPercents(items)
		byAsset := make(map[uint64]decimal.Decimal, len(items))
		for i, p := range items {
			byAsset[p.AssetID] = pcts[i]
		}
		sort.Slice(out, func(i, j int) bool {
			c := byAsset[out[i].AssetID].Cmp(byAsset[out[j].AssetID])
			if dir == Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
			return out[i].AssetID < out[j].AssetID
		})
		return out
	}

	spec, ok := positionKeys[key]
	if !ok {
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		c := comparePositions(out[i], out[j], spec, dir, s)
		if c != 0 {
			return c < 0
		}
		return out[i].AssetID < out[j].AssetID
	})
	return out
}

func comparePositions(a, b models.Position, spec posKeySpec, dir Direction, s *Sorter) int {
	if spec.str != nil {
		c := s.compareStrings(spec.str(a), spec.str(b))
		if dir == Desc {
			c = -c
		}
		return c
	}
	return compareNullable(spec.num(a), spec.num(b), spec.nulls, dir)
}

type txKeySpec struct {
	str   func(models.Transaction) string
	num   func(models.Transaction) *decimal.Decimal
	nulls nullPolicy
	plain bool // byte-wise compare (ISO dates), not collated
}

var transactionKeys = map[string]txKeySpec{
	TxKeyDate:      {str: func(t models.Transaction) string { return t.TxDate }, plain: true},
	TxKeyType:      {str: func(t models.Transaction) string { return t.Type }},
	TxKeySymbol:    {str: func(t models.Transaction) string { return t.Symbol }},
	TxKeyPortfolio: {str: func(t models.Transaction) string { return t.PortfolioName }},
	TxKeyQuantity:  {num: func(t models.Transaction) *decimal.Decimal { return &t.Quantity }},
	TxKeyPrice:     {num: func(t models.Transaction) *decimal.Decimal { return t.Price }, nulls: nullsLast},
	TxKeyFees:      {num: func(t models.Transaction) *decimal.Decimal { return t.Fees }, nulls: nullsLast},
	TxKeyTotal: {num: func(t models.Transaction) *decimal.Decimal {
		total := t.Total()
		return &total
	}, nulls: nullsZero},
}

// SortTransactions returns a new slice ordered by the given key. Ties fall
// back to the transaction ID so ascending and descending orders are exact
// reverses of each other.
func SortTransactions(items []models.Transaction, key string, dir Direction, s *Sorter) []models.Transaction {
	out := make([]models.Transaction, len(items))
	copy(out, items)

	spec, ok := transactionKeys[key]
	if !ok {
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		c := compareTransactions(out[i], out[j], spec, dir, s)
		if c != 0 {
			return c < 0
		}
		if dir == Desc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func compareTransactions(a, b models.Transaction, spec txKeySpec, dir Direction, s *Sorter) int {
	if spec.str != nil {
		va, vb := spec.str(a), spec.str(b)
		var c int
		if spec.plain {
			switch {
			case va < vb:
				c = -1
			case va > vb:
				c = 1
			}
		} else {
			c = s.compareStrings(va, vb)
		}
		if dir == Desc {
			c = -c
		}
		return c
	}
	return compareNullable(spec.num(a), spec.num(b), spec.nulls, dir)
}

// compareNullable orders two optional decimals. Under nullsLast a missing
// value ends up after every present one regardless of direction; under
// nullsZero it participates as zero.
func compareNullable(a, b *decimal.Decimal, nulls nullPolicy, dir Direction) int {
	if nulls == nullsZero {
		va, vb := decimal.Zero, decimal.Zero
		if a != nil {
			va = *a
		}
		if b != nil {
			vb = *b
		}
		c := va.Cmp(vb)
		if dir == Desc {
			c = -c
		}
		return c
	}

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := a.Cmp(*b)
	if dir == Desc {
		c = -c
	}
	return c
}
