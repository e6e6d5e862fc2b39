package in_memory

import (
	"context"
	"sync"

	"github.com/swiftex-io/quilex/internal/port"
)

// SessionStore is the in-process twin of the Redis store, used in tests
// and when no external store is configured.
type SessionStore struct {
	mu   sync.Mutex
	blob []byte
}

var _ port.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(ctx context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.blob = cp
	return nil
}

func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, port.ErrNoSession
	}
	cp := make([]byte, len(s.blob))
	copy(cp, s.blob)
	return cp, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	return nil
}
