package port

import (
	"context"
	"errors"
)

// ErrNoSession is returned by a store when no blob has been saved.
var ErrNoSession = errors.New("no session")

// SessionStore holds a single opaque session blob under a fixed key.
type SessionStore interface {
	Save(ctx context.Context, blob []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
}
