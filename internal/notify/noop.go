package notify

import (
	"context"
	"sync"
)

// NoopNotifier records notifications in memory. Used when no notifier is
// configured and as a capture in tests.
type NoopNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *NoopNotifier) Send(_ context.Context, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}

func (n *NoopNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.sent))
	copy(out, n.sent)
	return out
}
