package session

import (
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/actor"
	"github.com/craftfolio/portfolio-api/internal/model"
)

// Message is the closed set of requests the session actor accepts.
type Message interface {
	message()
}

// LoginMsg mints a fresh token pair for an already-authenticated user.
type LoginMsg struct {
	UserID uuid.UUID
	Reply  actor.Reply[model.TokenPair]
}

// RefreshMsg rotates the presented refresh token. The old record is
// revoked before the replacement is issued, so a replayed token is
// rejected even when requests race.
type RefreshMsg struct {
	Token string
	Reply actor.Reply[model.TokenPair]
}

// LogoutMsg revokes the presented refresh token. Unknown and
// already-revoked tokens succeed; logout is idempotent.
type LogoutMsg struct {
	Token string
	Reply actor.Reply[struct{}]
}

func (LoginMsg) message()   {}
func (RefreshMsg) message() {}
func (LogoutMsg) message()  {}
