// Package notify posts measurement alerts, currently to Slack.
package notify

import "context"

// Notifier delivers a message to wherever alerts are configured to go.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Noop is a Notifier that drops everything. Used when notifications are
// disabled so callers never need a nil check.
type Noop struct{}

func (Noop) Notify(context.Context, string) error { return nil }
