package notify

import "context"

// Notifier delivers a settlement message to a recipient. Delivery is
// best-effort: callers log failures and move on, they never roll back a
// recorded result because a message did not go out.
type Notifier interface {
	Send(ctx context.Context, recipient, message string) error
}
