package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenTTL is the validity window of a refresh-token record. The
// refresh cookie max-age is derived from the same constant so the cookie
// can never outlive the record.
const RefreshTokenTTL = 7 * 24 * time.Hour

// RefreshToken is a persisted refresh-token record. A record is usable
// only while it is not revoked and not past ExpiresAt; revocation is
// terminal.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
}

// RefreshTokenStore is the persistence boundary of the session actor.
// The indirection exists so tests can substitute an in-memory
// implementation for the postgres one.
type RefreshTokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, token string) error
	FindByValue(ctx context.Context, token string) (RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeByValue(ctx context.Context, token string) error
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
