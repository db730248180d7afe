package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"folioboard/internal/chart"
	"folioboard/internal/client/folio"
	"folioboard/internal/derive"
	"folioboard/internal/models"
	"folioboard/internal/repository"
	"folioboard/internal/session"
)

var (
	ErrShareNotFound = errors.New("share link not found or revoked")
	ErrNotLinkOwner  = errors.New("share link belongs to another user")
)

type shareAPI interface {
	GetPortfolio(ctx context.Context, id uint64) (*models.Portfolio, error)
	ListPositions(ctx context.Context, portfolioID uint64) ([]models.Position, error)
	PortfolioHistory(ctx context.Context, portfolioID uint64, period string) ([]models.PortfolioHistoryPoint, error)
}

// SharePayload is the snapshot stored for a public link: a read-only cut of
// the holdings table and the ALL-period value chart. No identifiers from
// the owner's account leak into it.
type SharePayload struct {
	PortfolioName string           `json:"portfolio_name"`
	BaseCurrency  string           `json:"base_currency"`
	Rows          []PositionRow    `json:"rows"`
	Totals        TotalsRow        `json:"totals"`
	History       chart.Dataset    `json:"history"`
	GainPct       *decimal.Decimal `json:"gain_pct,omitempty"`
	GainPctFmt    string           `json:"gain_pct_fmt"`
}

// PublicView is what the unauthenticated share page renders.
type PublicView struct {
	Title      string       `json:"title"`
	CapturedAt time.Time    `json:"captured_at"`
	Payload    SharePayload `json:"payload"`
}

// ShareService manages public portfolio links. Snapshots are captured at
// link creation and refreshed in the background while the owner has an
// active session; public requests never reach the backend API.
type ShareService struct {
	Repo     repository.Repository
	API      shareAPI
	Sessions *session.Store
	Logger   *zap.Logger

	// MinAge skips background refresh for snapshots younger than this;
	// zero refreshes every pass.
	MinAge time.Duration
}

// CreateLink mints a link for the portfolio and captures its first
// snapshot. The ctx must carry the owner's bearer token.
func (s *ShareService) CreateLink(ctx context.Context, ownerUserID, portfolioID uint64, title string) (*models.ShareLink, error) {
	link := &models.ShareLink{
		Token:       uuid.NewString(),
		OwnerUserID: ownerUserID,
		PortfolioID: portfolioID,
		Title:       title,
	}
	if err := s.Repo.CreateShareLink(ctx, link); err != nil {
		return nil, err
	}
	if err := s.CaptureSnapshot(ctx, link); err != nil {
		// Link exists; the snapshot retries on the next refresh pass.
		if s.Logger != nil {
			s.Logger.Warn("initial share snapshot failed", zap.String("token", link.Token), zap.Error(err))
		}
	}
	return link, nil
}

// Revoke disables a link. Only the owner may revoke it; the snapshot stays
// behind but is unreachable once the link is gone.
func (s *ShareService) Revoke(ctx context.Context, ownerUserID uint64, token string) error {
	link, err := s.Repo.GetShareLinkByToken(ctx, token)
	if err != nil {
		return err
	}
	if link == nil {
		return ErrShareNotFound
	}
	if link.OwnerUserID != ownerUserID {
		return ErrNotLinkOwner
	}
	return s.Repo.RevokeShareLink(ctx, link.ID)
}

func (s *ShareService) ListLinks(ctx context.Context, ownerUserID uint64) ([]models.ShareLink, error) {
	return s.Repo.ListShareLinksByOwner(ctx, ownerUserID)
}

// Resolve serves the public page from the stored snapshot.
func (s *ShareService) Resolve(ctx context.Context, token string) (*PublicView, error) {
	link, err := s.Repo.GetShareLinkByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrShareNotFound
	}
	snap, err := s.Repo.GetShareSnapshot(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrShareNotFound
	}
	var payload SharePayload
	if err := json.Unmarshal(snap.Payload, &payload); err != nil {
		return nil, err
	}
	return &PublicView{Title: link.Title, CapturedAt: snap.CapturedAt, Payload: payload}, nil
}

// CaptureSnapshot fetches the portfolio through the owner's token on ctx and
// stores the rendered cut.
func (s *ShareService) CaptureSnapshot(ctx context.Context, link *models.ShareLink) error {
	pf, err := s.API.GetPortfolio(ctx, link.PortfolioID)
	if err != nil {
		return err
	}
	positions, err := s.API.ListPositions(ctx, link.PortfolioID)
	if err != nil {
		return err
	}
	history, err := s.API.PortfolioHistory(ctx, link.PortfolioID, chart.PeriodAll.String())
	if err != nil {
		return err
	}

	cur := ""
	name := ""
	if pf != nil {
		cur = pf.BaseCurrency
		name = pf.Name
	}

	pcts := derive.WalletPercents(positions)
	sorted := derive.SortPositions(positions, derive.PosKeyMarketValue, derive.Desc, nil)
	pctByAsset := make(map[uint64]decimal.Decimal, len(positions))
	for i, p := range positions {
		pctByAsset[p.AssetID] = pcts[i]
	}
	rows := make([]PositionRow, len(sorted))
	for i, p := range sorted {
		rows[i] = formatPositionRow(p, pctByAsset[p.AssetID], cur)
	}

	totals := derive.SumPositions(positions)
	mv, cb, pnl := totals.MarketValue, totals.CostBasis, totals.UnrealizedPnL
	payload := SharePayload{
		PortfolioName: name,
		BaseCurrency:  cur,
		Rows:          rows,
		Totals: TotalsRow{
			MarketValue:    mv,
			CostBasis:      cb,
			UnrealizedPnL:  pnl,
			MarketValueFmt: currencyCell(&mv, cur),
			CostBasisFmt:   currencyCell(&cb, cur),
			UnrealizedFmt:  signedCurrencyCell(&pnl, cur),
			UnpricedRows:   totals.UnpricedRows,
		},
		History: chart.BuildHistoryDataset(history, chart.PeriodAll),
		GainPct: chart.PeriodGainPct(history),
	}
	payload.GainPctFmt = percentCell(payload.GainPct)

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.Repo.UpsertShareSnapshot(ctx, &models.ShareSnapshot{
		ShareLinkID: link.ID,
		Payload:     raw,
		CapturedAt:  time.Now().UTC(),
	})
}

// RefreshAll re-captures snapshots for links whose owner currently has an
// active session; an owner with no session keeps the last capture. Driven
// by the background cron.
func (s *ShareService) RefreshAll(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.Sessions == nil {
		return nil
	}
	ids, err := s.Sessions.ActiveIDs(ctx)
	if err != nil {
		return err
	}
	tokenByUser := make(map[uint64]string, len(ids))
	for _, id := range ids {
		sess, err := s.Sessions.Get(ctx, id)
		if err != nil {
			continue
		}
		tokenByUser[sess.UserID] = sess.Token
	}
	if len(tokenByUser) == 0 {
		return nil
	}

	links, err := s.Repo.ListActiveShareLinks(ctx)
	if err != nil {
		return err
	}
	for i := range links {
		link := links[i]
		token, ok := tokenByUser[link.OwnerUserID]
		if !ok {
			continue
		}
		if s.MinAge > 0 {
			snap, err := s.Repo.GetShareSnapshot(ctx, link.ID)
			if err == nil && snap != nil && time.Since(snap.CapturedAt) < s.MinAge {
				continue
			}
		}
		if err := s.CaptureSnapshot(folio.WithToken(ctx, token), &link); err != nil && s.Logger != nil {
			s.Logger.Warn("share snapshot refresh failed", zap.String("token", link.Token), zap.Error(err))
		}
	}
	return nil
}
