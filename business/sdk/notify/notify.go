// Package notify provides the outbound notification contract. Delivery is
// best effort and must never fail the business operation that triggered it.
package notify

import (
	"context"

	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Message represents a notification to be delivered to a recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier declares the behavior required to deliver notifications.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// =============================================================================

// LogNotifier writes notifications to the log instead of delivering them.
// Self-hosted installs without an outbound mail path run with this.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier constructs a notifier backed by the logger.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{
		log: log,
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.log.Info(ctx, "notify", "to", msg.To, "subject", msg.Subject)
	return nil
}
