package session

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL matches the server-side retention of the session record.
// The client cookie expires much earlier, see cookie.go.
const DefaultTTL = 14 * 24 * time.Hour

var (
	ErrNotFound         = errors.New("session not found")
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Session binds an opaque id to an account. AccountID is a weak
// reference: deleting the account does not touch the session, the lookup
// just stops resolving to a usable identity.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	AccountID string    `json:"account_id" bson:"account_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Store is a TTL-expiring record store. Get returns ErrNotFound for
// absent and expired sessions alike; Delete is idempotent.
type Store interface {
	Create(ctx context.Context, accountID string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
