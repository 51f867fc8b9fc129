package notification

import "context"

type Store interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
}

// Notifier pushes an event to every live session of a user. Implementations
// must not block and may drop events.
type Notifier interface {
	Notify(userID, event string, payload any)
}

// NopNotifier discards events.
type NopNotifier struct{}

func (NopNotifier) Notify(string, string, any) {}
