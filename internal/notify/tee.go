package notify

import (
	"github.com/swiftex-io/quilex/internal/domain"
	"github.com/swiftex-io/quilex/internal/port"
)

type tee []port.NotificationSink

func (t tee) Push(title, message string, level domain.NotifyLevel) {
	for _, s := range t {
		if s != nil {
			s.Push(title, message, level)
		}
	}
}

// Tee fans one sink call out to several sinks.
func Tee(sinks ...port.NotificationSink) port.NotificationSink {
	return tee(sinks)
}
