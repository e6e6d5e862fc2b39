package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/swiftex-io/quilex/internal/core"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/logger"
	"github.com/swiftex-io/quilex/internal/port"
)

// ErrNoSession is returned by ledger mutators invoked without an active
// guest or authenticated session.
var ErrNoSession = errors.New("no active session")

// Manager owns the session lifecycle and gates the deposit/withdraw
// surface on an active session. The session itself is one opaque JSON
// blob in an external key-value store.
type Manager struct {
	store  port.SessionStore
	engine *core.Engine
	log    *logger.Logger

	current *domain.Session
}

func NewManager(store port.SessionStore, engine *core.Engine, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.New(logger.LevelInfo, nil)
	}
	return &Manager{store: store, engine: engine, log: log}
}

// Initialize restores a persisted session if one exists. Without a stored
// blob the manager stays signed out and the ledger keeps its default seed.
func (m *Manager) Initialize(ctx context.Context) (*domain.Session, error) {
	blob, err := m.store.Load(ctx)
	if errors.Is(err, port.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	m.current = &s
	if s.Mode == domain.SessionGuest {
		m.engine.Reset(domain.GuestSeed())
	}
	m.log.Info("session restored: mode=%s", s.Mode)
	return &s, nil
}

// EnterGuestMode seeds the demo balances and persists a guest session.
func (m *Manager) EnterGuestMode(ctx context.Context) (*domain.Session, error) {
	s := &domain.Session{
		Mode:      domain.SessionGuest,
		CreatedAt: time.Now(),
	}
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: encode: %w", err)
	}
	if err := m.store.Save(ctx, blob); err != nil {
		return nil, fmt.Errorf("session: save: %w", err)
	}
	m.current = s
	m.engine.Reset(domain.GuestSeed())
	m.log.Info("guest session started")
	return s, nil
}

// SignOut clears the persisted session and resets balances to the default
// seed list.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	m.current = nil
	m.engine.Reset(domain.DefaultSeed())
	m.log.Info("signed out")
	return nil
}

// Current returns the active session, or nil.
func (m *Manager) Current() *domain.Session {
	return m.current
}

// Deposit requires an active session, then credits the ledger.
func (m *Manager) Deposit(ctx context.Context, symbol string, amount float64) error {
	if m.current == nil {
		return ErrNoSession
	}
	return m.engine.Deposit(symbol, amount)
}

// Withdraw requires an active session. Returns false when funds are short.
func (m *Manager) Withdraw(ctx context.Context, symbol string, amount float64) (bool, error) {
	if m.current == nil {
		return false, ErrNoSession
	}
	return m.engine.Withdraw(symbol, amount), nil
}

// Tier derives the referral tier of the active session. Signed-out callers
// get Bronze.
func (m *Manager) Tier() domain.Tier {
	if m.current == nil {
		return domain.TierBronze
	}
	return domain.TierFor(m.current.ReferralCount, m.current.ReferralVolume)
}
