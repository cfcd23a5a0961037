// Package notify delivers user-facing notifications raised by library
// operations.
package notify

import (
	"context"

	zlog "github.com/rs/zerolog/log"
)

// Variant classifies a notification.
type Variant string

const (
	VariantInfo        Variant = "info"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// Notification is a short user-facing message.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notifier delivers notifications. Delivery is best-effort; callers do
// not learn about failures.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	ev := zlog.Info()
	if n.Variant == VariantDestructive {
		ev = zlog.Warn()
	}
	ev.Str("variant", string(n.Variant)).Msgf("notify: %s: %s", n.Title, n.Description)
}

// MultiNotifier fans a notification out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
