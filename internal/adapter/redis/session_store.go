package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swiftex-io/quilex/internal/port"
)

// sessionKey is the fixed key the opaque session blob lives under.
const sessionKey = "quilex:session"

// SessionStore keeps the session blob in Redis.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ port.SessionStore = (*SessionStore)(nil)

func NewSessionStore(addr, password string, db int, ttl time.Duration) *SessionStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &SessionStore{client: rdb, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, blob []byte) error {
	return s.client.Set(ctx, sessionKey, blob, s.ttl).Err()
}

func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrNoSession
	}
	return b, err
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}

func (s *SessionStore) Close() error {
	return s.client.Close()
}
