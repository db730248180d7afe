package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"folioboard/internal/client/folio"
	"folioboard/internal/models"
)

type stubDividendAPI struct {
	pending []models.PendingDividend
	stats   *models.DividendStats
	rates   map[string]decimal.Decimal
	fxErr   error

	mu       sync.Mutex
	accepted []folio.AcceptDividendRequest
	rejected []uint64
	fetches  int
	release  chan struct{}
}

func (a *stubDividendAPI) ListPendingDividends(ctx context.Context, portfolioID uint64) ([]models.PendingDividend, error) {
	return a.pending, nil
}

func (a *stubDividendAPI) DividendStats(ctx context.Context, portfolioID uint64) (*models.DividendStats, error) {
	return a.stats, nil
}

func (a *stubDividendAPI) AcceptDividend(ctx context.Context, dividendID uint64, req folio.AcceptDividendRequest) error {
	if a.release != nil {
		<-a.release
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accepted = append(a.accepted, req)
	return nil
}

func (a *stubDividendAPI) RejectDividend(ctx context.Context, dividendID uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rejected = append(a.rejected, dividendID)
	return nil
}

func (a *stubDividendAPI) FetchDividends(ctx context.Context, portfolioID uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetches++
	return nil
}

func (a *stubDividendAPI) FXRate(ctx context.Context, from, to string) (*models.FXRate, error) {
	if a.fxErr != nil {
		return nil, a.fxErr
	}
	rate, ok := a.rates[from+"/"+to]
	if !ok {
		return nil, errors.New("no rate")
	}
	return &models.FXRate{From: from, To: to, Rate: rate}, nil
}

func pendingDividend(id uint64, currency, gross string) models.PendingDividend {
	return models.PendingDividend{
		ID:          id,
		Symbol:      "DIV",
		GrossAmount: decimal.RequireFromString(gross),
		Currency:    currency,
		Status:      models.DividendPending,
	}
}

func TestTotalPendingConvertsAtSpotRate(t *testing.T) {
	api := &stubDividendAPI{
		pending: []models.PendingDividend{
			pendingDividend(1, "EUR", "100"),
			pendingDividend(2, "USD", "50"),
		},
		rates: map[string]decimal.Decimal{"EUR/USD": decimal.RequireFromString("1.1")},
	}
	svc := &DividendService{API: api}

	total, partial := svc.TotalPending(context.Background(), api.pending, "USD")
	if partial {
		t.Fatalf("unexpected partial flag")
	}
	if want := decimal.RequireFromString("160"); !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestTotalPendingFallsBackWithoutRates(t *testing.T) {
	api := &stubDividendAPI{
		pending: []models.PendingDividend{
			pendingDividend(1, "EUR", "100"),
			pendingDividend(2, "USD", "50"),
		},
		fxErr: errors.New("fx provider down"),
	}
	svc := &DividendService{API: api}

	total, partial := svc.TotalPending(context.Background(), api.pending, "USD")
	if !partial {
		t.Fatalf("partial flag not set")
	}
	if want := decimal.RequireFromString("50"); !total.Equal(want) {
		t.Fatalf("total = %s, want same-currency-only %s", total, want)
	}
}

func TestTotalPendingSkipsResolvedRows(t *testing.T) {
	pending := []models.PendingDividend{
		pendingDividend(1, "USD", "50"),
		{ID: 2, GrossAmount: decimal.RequireFromString("99"), Currency: "USD", Status: models.DividendAccepted},
	}
	svc := &DividendService{API: &stubDividendAPI{}}

	total, _ := svc.TotalPending(context.Background(), pending, "USD")
	if want := decimal.RequireFromString("50"); !total.Equal(want) {
		t.Fatalf("total = %s, want %s", total, want)
	}
}

func TestAcceptDefaultsWithholdingTax(t *testing.T) {
	api := &stubDividendAPI{}
	svc := &DividendService{API: api, InFlight: NewInFlightSet()}

	if err := svc.Accept(context.Background(), 1, nil, "quarterly"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if len(api.accepted) != 1 {
		t.Fatalf("accepted %d requests, want 1", len(api.accepted))
	}
	if !api.accepted[0].WithholdingTax.IsZero() {
		t.Fatalf("tax = %s, want 0", api.accepted[0].WithholdingTax)
	}
	if api.accepted[0].Notes != "quarterly" {
		t.Fatalf("notes = %q", api.accepted[0].Notes)
	}
}

func TestMutationsFireChangeCallback(t *testing.T) {
	api := &stubDividendAPI{}
	var changed []uint64
	svc := &DividendService{API: api, InFlight: NewInFlightSet()}
	svc.OnChange = func(ctx context.Context, dividendID uint64) {
		changed = append(changed, dividendID)
	}

	if err := svc.Accept(context.Background(), 3, nil, ""); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := svc.Reject(context.Background(), 4); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if len(changed) != 2 || changed[0] != 3 || changed[1] != 4 {
		t.Fatalf("callback ids = %v, want [3 4]", changed)
	}
}

func TestAcceptRejectsDuplicateWhileInFlight(t *testing.T) {
	api := &stubDividendAPI{}
	svc := &DividendService{API: api, InFlight: NewInFlightSet()}

	// Simulate a still-running accept holding the row.
	if !svc.InFlight.TryBegin(7) {
		t.Fatalf("could not claim row")
	}

	if err := svc.Accept(context.Background(), 7, nil, ""); !errors.Is(err, ErrRowBusy) {
		t.Fatalf("duplicate accept err = %v, want ErrRowBusy", err)
	}
	if err := svc.Reject(context.Background(), 7); !errors.Is(err, ErrRowBusy) {
		t.Fatalf("duplicate reject err = %v, want ErrRowBusy", err)
	}
	// Other rows are unaffected.
	if err := svc.Reject(context.Background(), 8); err != nil {
		t.Fatalf("unrelated row: %v", err)
	}

	svc.InFlight.End(7)
	if err := svc.Accept(context.Background(), 7, nil, ""); err != nil {
		t.Fatalf("accept after release: %v", err)
	}
	if svc.InFlight.Active(7) {
		t.Fatalf("row still marked busy after completion")
	}
}

func TestOverviewFiltersAndFormats(t *testing.T) {
	api := &stubDividendAPI{
		pending: []models.PendingDividend{
			pendingDividend(1, "USD", "12.5"),
			{ID: 2, GrossAmount: decimal.RequireFromString("99"), Currency: "USD", Status: models.DividendRejected},
		},
		stats: &models.DividendStats{PendingCount: 1, AcceptedCount: 3, Currency: "USD"},
	}
	svc := &DividendService{API: api, InFlight: NewInFlightSet()}

	view, err := svc.Overview(context.Background(), 1, "USD")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(view.Rows) != 1 {
		t.Fatalf("rows = %d, want 1 (resolved rows filtered)", len(view.Rows))
	}
	if view.Rows[0].GrossFmt != "$12.50" {
		t.Fatalf("gross fmt = %q", view.Rows[0].GrossFmt)
	}
	if view.TotalPendingFmt != "$12.50" {
		t.Fatalf("total fmt = %q", view.TotalPendingFmt)
	}
	if view.Stats == nil || view.Stats.AcceptedCount != 3 {
		t.Fatalf("stats missing: %+v", view.Stats)
	}
}
