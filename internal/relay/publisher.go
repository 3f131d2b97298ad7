package relay

import "context"

// Publisher delivers verified webhook events to the configured bus.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}
