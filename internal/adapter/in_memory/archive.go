package in_memory

import (
	"context"
	"sync"

	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/port"
)

// Archive stores trades in memory, newest first.
type Archive struct {
	mu     sync.Mutex
	trades []*domain.Trade
}

var _ port.TradeArchive = (*Archive)(nil)

func NewArchive() *Archive {
	return &Archive{}
}

func (a *Archive) SaveTrade(ctx context.Context, t *domain.Trade) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := *t
	a.trades = append([]*domain.Trade{&cp}, a.trades...)
	return nil
}

func (a *Archive) RecentTrades(ctx context.Context, limit int) ([]*domain.Trade, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if limit <= 0 || limit > len(a.trades) {
		limit = len(a.trades)
	}
	out := make([]*domain.Trade, limit)
	for i := 0; i < limit; i++ {
		cp := *a.trades[i]
		out[i] = &cp
	}
	return out, nil
}
