package notifications

import "context"

type AccountCreatedInput struct {
	UserID string
	Name   string
	Email  string
}

// Notifier is invoked synchronously after a successful registration.
// Implementations must be safe to fail: callers log and move on.
type Notifier interface {
	SendAccountCreated(ctx context.Context, input AccountCreatedInput) error
}
