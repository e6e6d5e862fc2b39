package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/swiftex-io/quilex/internal/logger"
)

// MaxStep bounds the per-tick move to ±0.04% of the last price.
const MaxStep = 0.0004

// Batch is one tick: latest prices keyed by base symbol. Symbols that did
// not move are still included; consumers treat the batch as the complete
// snapshot for the tick.
type Batch map[string]float64

// Consumer receives each tick batch.
type Consumer func(Batch)

// Walker produces a bounded random walk around each symbol's last price on
// a fixed interval. It is a plain producer: the engine consumes whatever
// batch it is handed and assumes nothing about the timer behind it.
type Walker struct {
	interval time.Duration
	last     map[string]float64
	rand     *rand.Rand
	log      *logger.Logger
}

func NewWalker(initial map[string]float64, interval time.Duration, log *logger.Logger) *Walker {
	if interval <= 0 {
		interval = time.Second
	}
	last := make(map[string]float64, len(initial))
	for sym, px := range initial {
		last[sym] = px
	}
	return &Walker{
		interval: interval,
		last:     last,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log,
	}
}

// Seed replaces the RNG source, for deterministic runs.
func (w *Walker) Seed(seed int64) {
	w.rand = rand.New(rand.NewSource(seed))
}

// Step advances every symbol one tick and returns the new batch.
func (w *Walker) Step() Batch {
	batch := make(Batch, len(w.last))
	for sym, px := range w.last {
		drift := (w.rand.Float64()*2 - 1) * MaxStep
		next := px * (1 + drift)
		w.last[sym] = next
		batch[sym] = next
	}
	return batch
}

// Run emits a batch to the consumer once per interval until the context is
// canceled.
func (w *Walker) Run(ctx context.Context, consume Consumer) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if w.log != nil {
		w.log.Info("price feed started: %d symbols, interval %s", len(w.last), w.interval)
	}
	for {
		select {
		case <-ctx.Done():
			if w.log != nil {
				w.log.Info("price feed stopped")
			}
			return
		case <-ticker.C:
			consume(w.Step())
		}
	}
}
