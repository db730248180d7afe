package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/models"
)

// ErrRowBusy means an accept/reject for the same dividend is still running;
// the duplicate click is dropped, not queued.
var ErrRowBusy = errors.New("action already in progress for this dividend")

type dividendAPI interface {
	ListPendingDividends(ctx context.Context, portfolioID uint64) ([]models.PendingDividend, error)
	DividendStats(ctx context.Context, portfolioID uint64) (*models.DividendStats, error)
	AcceptDividend(ctx context.Context, dividendID uint64, req folio.AcceptDividendRequest) error
	RejectDividend(ctx context.Context, dividendID uint64) error
	FetchDividends(ctx context.Context, portfolioID uint64) error
	FXRate(ctx context.Context, from, to string) (*models.FXRate, error)
}

// DividendRow is one pending-dividend row. InFlight marks a row whose
// accept/reject is still running; only that row's buttons disable.
type DividendRow struct {
	models.PendingDividend
	InFlight    bool   `json:"in_flight"`
	PerShareFmt string `json:"per_share_fmt"`
	GrossFmt    string `json:"gross_fmt"`
	SharesFmt   string `json:"shares_fmt"`
}

// DividendOverview is the dividends panel: pending rows, the backend's
// accepted-side stats, and the pending total converted into the portfolio
// currency.
type DividendOverview struct {
	Rows            []DividendRow         `json:"rows"`
	Stats           *models.DividendStats `json:"stats,omitempty"`
	TotalPending    decimal.Decimal       `json:"total_pending"`
	TotalPendingFmt string                `json:"total_pending_fmt"`
	BaseCurrency    string                `json:"base_currency"`
	FXPartial       bool                  `json:"fx_partial"`
}

type DividendService struct {
	API      dividendAPI
	InFlight *InFlightSet
	Logger   *zap.Logger

	// OnChange fires after a successful accept or reject, before the
	// caller's reload. Optional.
	OnChange func(ctx context.Context, dividendID uint64)
}

// Overview loads the dividends panel for one portfolio.
func (s *DividendService) Overview(ctx context.Context, portfolioID uint64, baseCurrency string) (*DividendOverview, error) {
	pending, err := s.API.ListPendingDividends(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	stats, err := s.API.DividendStats(ctx, portfolioID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("dividend stats unavailable", zap.Uint64("portfolio_id", portfolioID), zap.Error(err))
		}
		stats = nil
	}

	rows := make([]DividendRow, 0, len(pending))
	for _, d := range pending {
		if d.Status != models.DividendPending {
			continue
		}
		rows = append(rows, DividendRow{
			PendingDividend: d,
			InFlight:        s.InFlight != nil && s.InFlight.Active(d.ID),
			PerShareFmt:     currencyCell(&d.PerShare, d.Currency),
			GrossFmt:        currencyCell(&d.GrossAmount, d.Currency),
			SharesFmt:       quantityCell(d.SharesHeld),
		})
	}

	total, partial := s.TotalPending(ctx, pending, baseCurrency)
	return &DividendOverview{
		Rows:            rows,
		Stats:           stats,
		TotalPending:    total,
		TotalPendingFmt: currencyCell(&total, baseCurrency),
		BaseCurrency:    baseCurrency,
		FXPartial:       partial,
	}, nil
}

// TotalPending sums pending gross amounts in the portfolio currency using
// today's spot rate for foreign rows. When a rate cannot be fetched those
// rows are left out and the partial flag is set; a same-currency-only total
// beats no total.
func (s *DividendService) TotalPending(ctx context.Context, pending []models.PendingDividend, baseCurrency string) (decimal.Decimal, bool) {
	total := decimal.Zero
	partial := false
	rates := map[string]decimal.Decimal{}

	for _, d := range pending {
		if d.Status != models.DividendPending {
			continue
		}
		if d.Currency == baseCurrency || d.Currency == "" {
			total = total.Add(d.GrossAmount)
			continue
		}
		rate, ok := rates[d.Currency]
		if !ok {
			fx, err := s.API.FXRate(ctx, d.Currency, baseCurrency)
			if err != nil || fx == nil {
				if s.Logger != nil {
					s.Logger.Warn("fx rate unavailable, skipping foreign dividends",
						zap.String("from", d.Currency), zap.String("to", baseCurrency), zap.Error(err))
				}
				rates[d.Currency] = decimal.Zero
				partial = true
				continue
			}
			rate = fx.Rate
			rates[d.Currency] = rate
		}
		if rate.IsZero() {
			partial = true
			continue
		}
		total = total.Add(d.GrossAmount.Mul(rate))
	}
	return total, partial
}

// Accept confirms a pending dividend. Withholding tax defaults to zero when
// the user leaves the field empty.
func (s *DividendService) Accept(ctx context.Context, dividendID uint64, withholdingTax *decimal.Decimal, notes string) error {
	if s.InFlight != nil {
		if !s.InFlight.TryBegin(dividendID) {
			return ErrRowBusy
		}
		defer s.InFlight.End(dividendID)
	}

	tax := decimal.Zero
	if withholdingTax != nil {
		tax = *withholdingTax
	}
	err := s.API.AcceptDividend(ctx, dividendID, folio.AcceptDividendRequest{
		WithholdingTax: tax,
		Notes:          notes,
	})
	if err == nil && s.OnChange != nil {
		s.OnChange(ctx, dividendID)
	}
	return err
}

// Reject dismisses a pending dividend.
func (s *DividendService) Reject(ctx context.Context, dividendID uint64) error {
	if s.InFlight != nil {
		if !s.InFlight.TryBegin(dividendID) {
			return ErrRowBusy
		}
		defer s.InFlight.End(dividendID)
	}
	err := s.API.RejectDividend(ctx, dividendID)
	if err == nil && s.OnChange != nil {
		s.OnChange(ctx, dividendID)
	}
	return err
}

// Refetch asks the backend to re-detect dividends, then reloads the panel.
func (s *DividendService) Refetch(ctx context.Context, portfolioID uint64, baseCurrency string) (*DividendOverview, error) {
	if err := s.API.FetchDividends(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.Overview(ctx, portfolioID, baseCurrency)
}
