package adapter

import "context"

// UserInfo is the slice of an identity-provider account this service cares
// about.
type UserInfo struct {
	ID    string
	Name  string
	Email string
}

// UserDirectory is the hex port for the hosted identity provider. The service
// only ever reads from it (ambassador signup verifies the owning account and
// borrows name/email as fallbacks).
type UserDirectory interface {
	Lookup(ctx context.Context, userID string) (*UserInfo, error)
}
