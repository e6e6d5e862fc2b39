package port

import (
	"context"

	"github.com/swiftex-io/quilex/internal/domain"
)

// TradeArchive persists executed trades. The engine treats it as optional
// and best-effort: a nil archive or a failed write never blocks a fill.
type TradeArchive interface {
	SaveTrade(ctx context.Context, t *domain.Trade) error
	RecentTrades(ctx context.Context, limit int) ([]*domain.Trade, error)
}
