// Package cache keeps login sessions and one-time tokens in Redis, with
// map-backed equivalents for STORE_DRIVER=memory.
package cache

import (
	"context"
	"time"
)

// Session is the per-user login record. Only one session is live per user;
// SessionID must match the sid claim of presented tokens.
type Session struct {
	UserID    string
	SessionID string
	Role      string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SessionStore interface {
	Start(ctx context.Context, s Session) error
	Get(ctx context.Context, userID string) (Session, bool, error)
	// Rotate swaps the session id only when the current one equals oldSID.
	Rotate(ctx context.Context, userID, oldSID, newSID string) (bool, error)
	Revoke(ctx context.Context, userID string) error
}

// TokenStore holds single-use tokens such as password reset links.
type TokenStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns the value and deletes it; ok is false when missing or expired.
	Take(ctx context.Context, key string) (value string, ok bool, err error)
}
