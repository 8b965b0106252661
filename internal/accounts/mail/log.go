package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the logger instead of a transport. The dev
// default: confirmation links show up in the service log where a developer
// can click them.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.Logger.Info("outbound mail",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
