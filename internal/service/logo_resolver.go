package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"folioboard/internal/client/folio"
)

type logoAPI interface {
	ResolveLogo(ctx context.Context, assetID uint64, hints *folio.LogoHints) (string, error)
}

// LogoResolver finds asset logo URLs with a bounded retry: one plain
// lookup, one retry with name/type hints, then give up. A miss is cached so
// re-renders do not hammer the backend, and the caller hides the image
// slot instead of showing a broken one.
type LogoResolver struct {
	API    logoAPI
	Logger *zap.Logger

	mu    sync.Mutex
	cache map[uint64]string // "" means resolved-to-nothing
}

func NewLogoResolver(api logoAPI, logger *zap.Logger) *LogoResolver {
	return &LogoResolver{API: api, Logger: logger, cache: make(map[uint64]string)}
}

// Resolve returns the logo URL for the asset, or "" when none could be
// found.
func (r *LogoResolver) Resolve(ctx context.Context, assetID uint64, name, assetType string) string {
	r.mu.Lock()
	if url, ok := r.cache[assetID]; ok {
		r.mu.Unlock()
		return url
	}
	r.mu.Unlock()

	url, err := r.API.ResolveLogo(ctx, assetID, nil)
	if err != nil {
		url, err = r.API.ResolveLogo(ctx, assetID, &folio.LogoHints{Name: name, AssetType: assetType})
	}
	if err != nil {
		if r.Logger != nil {
			r.Logger.Debug("logo unresolved", zap.Uint64("asset_id", assetID))
		}
		url = ""
	}

	r.mu.Lock()
	r.cache[assetID] = url
	r.mu.Unlock()
	return url
}
