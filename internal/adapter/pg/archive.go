package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/port"
)

var _ port.TradeArchive = (*Archive)(nil)

// Archive persists executed trades in Postgres.
type Archive struct {
	pool *pgxpool.Pool
}

// call Close when finished working with the database.
func NewArchive(ctx context.Context, dsn string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	return &Archive{pool: pool}, nil
}

func (a *Archive) Close(ctx context.Context) {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Archive) SaveTrade(ctx context.Context, t *domain.Trade) error {
	if t == nil {
		return errors.New("nil trade")
	}
	_, err := a.pool.Exec(ctx, `
INSERT INTO trades(id, pair, side, price, amount, executed_at)
VALUES($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO NOTHING
`, t.ID, t.Pair, string(t.Type), t.Price, t.Amount, t.Time)
	return err
}

// RecentTrades returns the newest trades first.
func (a *Archive) RecentTrades(ctx context.Context, limit int) ([]*domain.Trade, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.pool.Query(ctx, `
SELECT id, pair, side, price, amount, executed_at
FROM trades
ORDER BY executed_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Trade
	for rows.Next() {
		var t domain.Trade
		var side string
		if err := rows.Scan(&t.ID, &t.Pair, &side, &t.Price, &t.Amount, &t.Time); err != nil {
			return nil, err
		}
		t.Type = domain.Side(side)
		res = append(res, &t)
	}
	return res, rows.Err()
}
