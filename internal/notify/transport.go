// Package notify holds the outbound message transports behind the notification bridge.
package notify

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
)

// LogTransport writes messages to the structured log instead of sending them.
// It is the default transport for development and single-node deployments.
type LogTransport struct {
	log *slog.Logger
}

// NewLogTransport creates a transport logging through logger.
func NewLogTransport(logger *slog.Logger) *LogTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTransport{log: logger}
}

var _ portssvc.MessageTransport = (*LogTransport)(nil)

func (t *LogTransport) SendEmail(ctx context.Context, address, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.log.InfoContext(ctx, "Email dispatched", slog.String("to", address), slog.String("subject", subject), slog.Int("body_bytes", len(body)))
	return nil
}

func (t *LogTransport) SendSMS(ctx context.Context, number, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.log.InfoContext(ctx, "SMS dispatched", slog.String("to", number), slog.Int("body_bytes", len(body)))
	return nil
}
