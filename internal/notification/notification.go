package notification

import (
	"context"
	"log/slog"
)

const (
	// KindWithdrawal is sent after a withdrawal is applied.
	KindWithdrawal = "withdrawal"
	// KindDeposit is sent after a deposit is applied.
	KindDeposit = "deposit"
	// KindPixTransfer is sent after a PIX transfer is applied.
	KindPixTransfer = "pix_transfer"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Amount      string
	Balance     string
	Reference   string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the logger. A nil notifier is a no-op.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	attrs := []any{
		slog.String("kind", message.Kind),
		slog.String("amount", message.Amount),
		slog.String("balance", message.Balance),
	}
	if message.Destination != "" {
		attrs = append(attrs, slog.String("destination", message.Destination))
	}
	if message.Reference != "" {
		attrs = append(attrs, slog.String("reference", message.Reference))
	}
	n.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
