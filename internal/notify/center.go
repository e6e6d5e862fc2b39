package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/port"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Center collects lifecycle notifications and drops each one after a fixed
// delay. Expiry runs on per-notification timers and never touches the
// engine; starving the timers only delays cleanup.
type Center struct {
	mu   sync.Mutex
	ttl  time.Duration
	list []domain.Notification
}

var _ port.NotificationSink = (*Center)(nil)

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Push records a notification and schedules its removal.
func (c *Center) Push(title, message string, level domain.NotifyLevel) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Level:     level,
		Timestamp: time.Now(),
	}
	c.mu.Lock()
	c.list = append(c.list, n)
	c.mu.Unlock()

	time.AfterFunc(c.ttl, func() { c.remove(n.ID) })
}

func (c *Center) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.list {
		if n.ID == id {
			c.list = append(c.list[:i], c.list[i+1:]...)
			return
		}
	}
}

// Active returns the notifications that have not expired yet.
func (c *Center) Active() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Notification, len(c.list))
	copy(out, c.list)
	return out
}
