package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/model"
)

type contextKey int

const authUserKey contextKey = iota

// AuthUser is the authenticated caller identity placed in the request
// context by the Authenticate middleware. Name and Email feed the audit
// columns of records the caller creates.
type AuthUser struct {
	ID    uuid.UUID
	Email model.Email
	Name  model.Name
	Role  model.Role
}

func withAuthUser(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, u)
}

// AuthUserFromContext returns the caller identity, if authenticated.
func AuthUserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(authUserKey).(AuthUser)
	return u, ok
}
