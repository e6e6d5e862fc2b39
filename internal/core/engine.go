package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/logger"
	"github.com/swiftex-io/quilex/internal/port"
)

// Engine is the matching and trigger engine: it owns the ledger, the
// resting-order book, the tracked positions and the trade history, and
// mutates them in response to price ticks and user actions.
//
// A single mutex serializes every public operation; each call runs to
// completion before the next is admitted, so a tick batch is always
// processed against one consistent snapshot.
type Engine struct {
	mu sync.Mutex

	ledger    *Ledger
	open      *book
	positions *book
	history   []domain.Trade

	sink    port.NotificationSink
	archive port.TradeArchive
	log     *logger.Logger

	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithArchive attaches a durable trade archive. Writes are best-effort.
func WithArchive(a port.TradeArchive) Option {
	return func(e *Engine) { e.archive = a }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(seed []domain.SeedAsset, sink port.NotificationSink, log *logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.New(logger.LevelInfo, nil)
	}
	e := &Engine{
		ledger:    NewLedger(seed),
		open:      newBook(),
		positions: newBook(),
		sink:      sink,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset drops all orders, positions and history and reseeds the ledger.
func (e *Engine) Reset(seed []domain.SeedAsset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ledger.Reset(seed)
	e.open.reset()
	e.positions.reset()
	e.history = nil
}

// Assets returns ledger entries in seed order.
func (e *Engine) Assets() []domain.Asset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Assets()
}

// Asset returns a copy of a single ledger entry.
func (e *Engine) Asset(symbol string) (domain.Asset, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if a := e.ledger.Get(symbol); a != nil {
		return *a, true
	}
	return domain.Asset{}, false
}

// OpenOrders lists resting orders matching the filter.
func (e *Engine) OpenOrders(f Filter) []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open.list(f)
}

// Positions lists filled orders still watched for TP/SL exits.
func (e *Engine) Positions(f Filter) []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positions.list(f)
}

// History returns up to limit trades, newest first. limit <= 0 means all.
func (e *Engine) History(limit int) []domain.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()
	if limit <= 0 || limit > len(e.history) {
		limit = len(e.history)
	}
	out := make([]domain.Trade, limit)
	copy(out, e.history[:limit])
	return out
}

// Deposit credits an asset. Unknown symbols are rejected rather than
// silently ignored.
func (e *Engine) Deposit(symbol string, amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.Deposit(symbol, amount); err != nil {
		return err
	}
	e.notify("Deposit Complete", fmt.Sprintf("Deposited %g %s", amount, symbol), domain.NotifySuccess)
	return nil
}

// Withdraw debits an asset. Returns false with no state change when
// available funds are short.
func (e *Engine) Withdraw(symbol string, amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ledger.Withdraw(symbol, amount) {
		return false
	}
	e.notify("Withdrawal Complete", fmt.Sprintf("Withdrew %g %s", amount, symbol), domain.NotifySuccess)
	return true
}

// PlaceOrder validates funds and either books a limit order (reserving the
// funds) or executes a market order immediately at the supplied price.
// The only failure is insufficient available funds (or a malformed request);
// it is reported as false with zero state change.
func (e *Engine) PlaceOrder(ctx context.Context, spec domain.OrderSpec) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if spec.Amount <= 0 || spec.Price <= 0 {
		return false
	}

	o := &domain.Order{
		ID:      uuid.NewString(),
		Symbol:  spec.Symbol,
		Side:    spec.Side,
		Type:    spec.Type,
		Price:   spec.Price,
		Amount:  spec.Amount,
		Time:    e.now(),
		TPPrice: spec.TPPrice,
		SLPrice: spec.SLPrice,
	}

	base, quote := domain.SplitPair(spec.Symbol)
	cost := spec.Price * spec.Amount

	// funds check is identical for every order type
	reserveSym, reserveAmt := quote, cost
	if spec.Side == domain.Sell {
		reserveSym, reserveAmt = base, spec.Amount
	}
	a := e.ledger.Get(reserveSym)
	if a == nil || a.Available < reserveAmt {
		e.log.Debug("order rejected: insufficient %s (need %g, have %g)", reserveSym, reserveAmt, availableOf(a))
		return false
	}

	if e.executesImmediately(spec) {
		e.executeMarketLocked(ctx, o, base, quote, cost)
		return true
	}

	e.ledger.Reserve(reserveSym, reserveAmt)
	o.Status = domain.Open
	e.open.add(o)
	e.log.Info("order placed: %s %s %s %g @ %g", o.ID, o.Side, o.Symbol, o.Amount, o.Price)
	e.notify("Order Placed", fmt.Sprintf("%s %g %s @ %g", o.Side, o.Amount, o.Symbol, o.Price), domain.NotifyInfo)
	return true
}

// executesImmediately reports whether the request runs as a market execution:
// a plain market order, or a TPSL order with market execution selected.
func (e *Engine) executesImmediately(spec domain.OrderSpec) bool {
	if spec.Type == domain.Market {
		return true
	}
	return spec.Type == domain.TPSL && spec.Exec == domain.ExecMarket
}

func (e *Engine) executeMarketLocked(ctx context.Context, o *domain.Order, base, quote string, cost float64) {
	if o.Side == domain.Buy {
		e.ledger.Debit(quote, cost)
		e.ledger.Credit(base, o.Amount)
	} else {
		e.ledger.Debit(base, o.Amount)
		e.ledger.Credit(quote, cost)
	}
	o.Filled = o.Amount
	o.Status = domain.Filled
	e.recordTrade(ctx, o.Symbol, o.Side, o.Price, o.Amount)
	if o.HasExit() {
		e.positions.add(o)
	}
	e.log.Info("market order filled: %s %s %s %g @ %g", o.ID, o.Side, o.Symbol, o.Amount, o.Price)
	e.notify("Order Filled", fmt.Sprintf("%s %g %s @ %g", o.Side, o.Amount, o.Symbol, o.Price), domain.NotifySuccess)
}

// CancelOrder releases the reservation made at placement and removes the
// order from the book. Unknown ids are a no-op; filled positions are never
// touched by cancellation.
func (e *Engine) CancelOrder(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.open.get(id)
	if !ok {
		return
	}
	base, quote := domain.SplitPair(o.Symbol)
	if o.Side == domain.Buy {
		e.ledger.Release(quote, o.Price*o.Amount)
	} else {
		e.ledger.Release(base, o.Amount)
	}
	o.Status = domain.Canceled
	e.open.remove(id)
	e.log.Info("order canceled: %s", id)
	e.notify("Order Canceled", fmt.Sprintf("%s %g %s @ %g", o.Side, o.Amount, o.Symbol, o.Price), domain.NotifyWarning)
}

// ApplyTicks processes one price batch keyed by base symbol: fills crossed
// resting orders, evaluates TP/SL triggers on tracked positions, then
// refreshes mark prices. The whole batch runs under one lock acquisition
// so every step sees the same snapshot.
func (e *Engine) ApplyTicks(ctx context.Context, ticks map[string]float64) {
	if len(ticks) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// Step 1: resting orders. A buy crosses when the live price drops to or
	// below the limit, a sell when it rises to or above. The fill executes
	// at the order's own price, not the live price.
	for _, o := range e.open.inOrder() {
		px, ok := ticks[o.Base()]
		if !ok || !crossed(o, px) {
			continue
		}
		e.fillRestingLocked(ctx, o)
	}

	// Step 2: TP/SL triggers, evaluated at the live tick price. TP is
	// checked before SL for determinism.
	for _, o := range e.positions.inOrder() {
		px, ok := ticks[o.Base()]
		if !ok {
			continue
		}
		e.evalTriggersLocked(ctx, o, px)
	}

	// Step 3: mark prices.
	for sym, px := range ticks {
		e.ledger.MarkPrice(sym, px)
	}
}

func crossed(o *domain.Order, px float64) bool {
	if o.Side == domain.Buy {
		return px <= o.Price
	}
	return px >= o.Price
}

func (e *Engine) fillRestingLocked(ctx context.Context, o *domain.Order) {
	base, quote := domain.SplitPair(o.Symbol)
	cost := o.Price * o.Amount

	if o.Side == domain.Buy {
		// quote available was reduced at placement; consuming the
		// reservation drops balance only
		e.ledger.ConsumeReserved(quote, cost)
		e.ledger.Credit(base, o.Amount)
	} else {
		e.ledger.ConsumeReserved(base, o.Amount)
		e.ledger.Credit(quote, cost)
	}

	o.Filled = o.Amount
	o.Status = domain.Filled
	e.open.remove(o.ID)
	e.recordTrade(ctx, o.Symbol, o.Side, o.Price, o.Amount)
	if o.HasExit() {
		e.positions.add(o)
	}
	e.log.Info("limit order filled: %s %s %s %g @ %g", o.ID, o.Side, o.Symbol, o.Amount, o.Price)
	e.notify("Limit Order Filled", fmt.Sprintf("%s %g %s @ %g", o.Side, o.Amount, o.Symbol, o.Price), domain.NotifySuccess)
}

func (e *Engine) evalTriggersLocked(ctx context.Context, o *domain.Order, px float64) {
	long := o.Side == domain.Buy
	if o.TPPrice > 0 && ((long && px >= o.TPPrice) || (!long && px <= o.TPPrice)) {
		e.closePositionLocked(ctx, o, px, "Take Profit Triggered", domain.NotifySuccess)
		return
	}
	if o.SLPrice > 0 && ((long && px <= o.SLPrice) || (!long && px >= o.SLPrice)) {
		e.closePositionLocked(ctx, o, px, "Stop Loss Triggered", domain.NotifyWarning)
	}
}

// closePositionLocked books the exit at the live tick price with the side
// flipped from the entry, and drops the position from tracking.
func (e *Engine) closePositionLocked(ctx context.Context, o *domain.Order, px float64, title string, level domain.NotifyLevel) {
	base, quote := domain.SplitPair(o.Symbol)
	exit := domain.Sell
	if o.Side == domain.Sell {
		exit = domain.Buy
	}

	if exit == domain.Sell {
		// long close: sell the base amount at the live price
		e.ledger.Debit(base, o.Amount)
		e.ledger.Credit(quote, px*o.Amount)
	} else {
		// short close: buy the base amount back at the live price
		e.ledger.Debit(quote, px*o.Amount)
		e.ledger.Credit(base, o.Amount)
	}

	e.positions.remove(o.ID)
	e.recordTrade(ctx, o.Symbol, exit, px, o.Amount)
	e.log.Info("position closed: %s %s %s %g @ %g (%s)", o.ID, exit, o.Symbol, o.Amount, px, title)
	e.notify(title, fmt.Sprintf("%s %g %s @ %g", exit, o.Amount, o.Symbol, px), level)
}

// recordTrade prepends a history entry (newest first) and forwards it to
// the archive when one is wired.
func (e *Engine) recordTrade(ctx context.Context, pair string, side domain.Side, price, amount float64) {
	tr := domain.Trade{
		ID:     uuid.NewString(),
		Pair:   pair,
		Type:   side,
		Price:  price,
		Amount: amount,
		Time:   e.now(),
	}
	e.history = append([]domain.Trade{tr}, e.history...)
	if e.archive != nil {
		if err := e.archive.SaveTrade(ctx, &tr); err != nil {
			e.log.Warn("trade archive write failed: %v", err)
		}
	}
}

func (e *Engine) notify(title, message string, level domain.NotifyLevel) {
	if e.sink != nil {
		e.sink.Push(title, message, level)
	}
}

func availableOf(a *domain.Asset) float64 {
	if a == nil {
		return 0
	}
	return a.Available
}
