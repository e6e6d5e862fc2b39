package core

import (
	"errors"

	"github.com/swiftex-io/quilex/internal/domain"
)

// ErrUnknownAsset is returned when a ledger operation names a symbol the
// ledger has never seen.
var ErrUnknownAsset = errors.New("unknown asset")

// ErrInvalidAmount is returned when a transfer amount is zero or negative.
var ErrInvalidAmount = errors.New("invalid amount")

// Ledger holds per-symbol balance/available pairs. It is not safe for
// concurrent use on its own; the owning engine serializes access.
//
// All money math is plain float64. The simulator this engine models used
// floating point throughout, and the behavior is kept for fidelity.
type Ledger struct {
	assets map[string]*domain.Asset
	seq    []string
	// session-start prices, baseline for the 24h change figure
	base map[string]float64
}

func NewLedger(seed []domain.SeedAsset) *Ledger {
	l := &Ledger{}
	l.Reset(seed)
	return l
}

// Reset discards all state and reseeds the ledger.
func (l *Ledger) Reset(seed []domain.SeedAsset) {
	l.assets = make(map[string]*domain.Asset, len(seed))
	l.seq = l.seq[:0]
	l.base = make(map[string]float64, len(seed))
	for _, s := range seed {
		l.assets[s.Symbol] = &domain.Asset{
			Symbol:    s.Symbol,
			Name:      s.Name,
			Balance:   s.Balance,
			Available: s.Balance,
			Price:     s.Price,
		}
		l.seq = append(l.seq, s.Symbol)
		l.base[s.Symbol] = s.Price
	}
}

// Get returns the asset for a symbol, or nil.
func (l *Ledger) Get(symbol string) *domain.Asset {
	return l.assets[symbol]
}

// Assets returns value copies in seed/insertion order.
func (l *Ledger) Assets() []domain.Asset {
	out := make([]domain.Asset, 0, len(l.seq))
	for _, sym := range l.seq {
		out = append(out, *l.assets[sym])
	}
	return out
}

// Deposit credits both balance and available. The amount must be positive;
// a negative deposit would otherwise drain the asset.
func (l *Ledger) Deposit(symbol string, amount float64) error {
	a, ok := l.assets[symbol]
	if !ok {
		return ErrUnknownAsset
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.Balance += amount
	a.Available += amount
	return nil
}

// Withdraw debits both balance and available. Returns false with no state
// change when available funds are short or the amount is not positive; a
// negative withdrawal would otherwise mint funds.
func (l *Ledger) Withdraw(symbol string, amount float64) bool {
	a, ok := l.assets[symbol]
	if !ok || amount <= 0 || a.Available < amount {
		return false
	}
	a.Balance -= amount
	a.Available -= amount
	return true
}

// Reserve earmarks funds for an open order: available drops, balance stays.
func (l *Ledger) Reserve(symbol string, amount float64) bool {
	a, ok := l.assets[symbol]
	if !ok || a.Available < amount {
		return false
	}
	a.Available -= amount
	return true
}

// Release reverses a prior reservation.
func (l *Ledger) Release(symbol string, amount float64) {
	if a, ok := l.assets[symbol]; ok {
		a.Available += amount
	}
}

// Credit increases both balance and available.
func (l *Ledger) Credit(symbol string, amount float64) {
	if a, ok := l.assets[symbol]; ok {
		a.Balance += amount
		a.Available += amount
	}
}

// Debit decreases both balance and available.
func (l *Ledger) Debit(symbol string, amount float64) {
	if a, ok := l.assets[symbol]; ok {
		a.Balance -= amount
		a.Available -= amount
	}
}

// ConsumeReserved burns funds that were already reserved: only balance
// drops, because available was reduced at reservation time.
func (l *Ledger) ConsumeReserved(symbol string, amount float64) {
	if a, ok := l.assets[symbol]; ok {
		a.Balance -= amount
	}
}

// MarkPrice records the latest tick price and refreshes the change figure
// against the session-start baseline.
func (l *Ledger) MarkPrice(symbol string, price float64) {
	a, ok := l.assets[symbol]
	if !ok {
		return
	}
	a.Price = price
	if base := l.base[symbol]; base > 0 {
		a.Change24h = (price - base) / base * 100
	}
}
