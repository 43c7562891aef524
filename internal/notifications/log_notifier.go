package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier is the only delivery channel for now: a structured log line
// per created account. A mail provider would implement the same interface.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendAccountCreated(ctx context.Context, in AccountCreatedInput) error {
	n.log.InfoContext(ctx, "notification.account_created",
		"user_id", in.UserID,
		"name", in.Name,
		"email", in.Email,
	)
	return nil
}
