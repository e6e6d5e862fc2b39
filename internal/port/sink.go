package port

import "github.com/swiftex-io/quilex/internal/domain"

// NotificationSink receives lifecycle events from the engine. Push is
// fire-and-forget and must never block the caller.
type NotificationSink interface {
	Push(title, message string, level domain.NotifyLevel)
}
