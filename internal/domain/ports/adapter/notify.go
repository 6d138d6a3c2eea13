package adapter

import "context"

// Notifier delivers a message to an end user. Delivery is best effort:
// callers log failures and move on, a completed purchase is never rolled back
// because a notification could not be sent.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, title, body string) error
}

// OpsAlerter pushes short operational alerts (sales, provisioning failures)
// to whoever runs the hotspot. Best effort as well.
type OpsAlerter interface {
	Alert(ctx context.Context, message string) error
}
