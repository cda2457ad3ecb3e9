package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/logger"
	"github.com/craftfolio/portfolio-api/internal/metrics"
	"github.com/craftfolio/portfolio-api/internal/model"
	"github.com/craftfolio/portfolio-api/internal/security"
	"github.com/craftfolio/portfolio-api/internal/token"
)

// Actor owns the refresh-token records. Rotation must be serialized:
// find, revoke and re-issue happen inside one message, so two requests
// replaying the same token can never both win.
type Actor struct {
	store model.RefreshTokenStore
	jwt   *token.JWT
	log   *logger.Logger
	now   func() time.Time
}

func New(store model.RefreshTokenStore, jwt *token.JWT, log *logger.Logger) *Actor {
	return &Actor{store: store, jwt: jwt, log: log.WithActor("session"), now: time.Now}
}

func (a *Actor) Run(ctx context.Context, mailbox <-chan Message) {
	for msg := range mailbox {
		a.dispatch(ctx, msg)
		metrics.MessagesProcessed.WithLabelValues("session").Inc()
	}
}

func (a *Actor) dispatch(ctx context.Context, msg Message) {
	switch m := msg.(type) {
	case LoginMsg:
		m.Reply.Resolve(a.login(ctx, m.UserID))
	case RefreshMsg:
		m.Reply.Resolve(a.refresh(ctx, m.Token))
	case LogoutMsg:
		m.Reply.Resolve(a.logout(ctx, m.Token))
	}
}

func (a *Actor) login(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	return a.issuePair(ctx, userID)
}

func (a *Actor) refresh(ctx context.Context, tokenValue string) (model.TokenPair, error) {
	record, err := a.store.FindByValue(ctx, tokenValue)
	if err != nil {
		if model.KindOf(err) == model.KindNotFound {
			return model.TokenPair{}, model.Unauthorized("invalid refresh token")
		}
		a.log.Error("refresh token lookup failed", "error", err)
		return model.TokenPair{}, model.Internal("failed to refresh session")
	}

	if record.Revoked {
		return model.TokenPair{}, model.Unauthorized("refresh token revoked")
	}
	// The expiry instant itself is already expired.
	if !a.now().Before(record.ExpiresAt) {
		return model.TokenPair{}, model.Unauthorized("refresh token expired")
	}

	// Revoke before issuing: if issuing fails the old token is already
	// burned, which fails closed.
	if err := a.store.RevokeByID(ctx, record.ID); err != nil {
		a.log.Error("refresh token revocation failed", "id", record.ID, "error", err)
		return model.TokenPair{}, model.Internal("failed to refresh session")
	}

	return a.issuePair(ctx, record.UserID)
}

func (a *Actor) logout(ctx context.Context, tokenValue string) (struct{}, error) {
	// Revoking an unknown or already-revoked token is a no-op success.
	if err := a.store.RevokeByValue(ctx, tokenValue); err != nil {
		a.log.Error("logout revocation failed", "error", err)
		return struct{}{}, model.Internal("failed to log out")
	}
	return struct{}{}, nil
}

func (a *Actor) issuePair(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	refreshValue, err := security.NewRefreshToken()
	if err != nil {
		a.log.Error("refresh token generation failed", "error", err)
		return model.TokenPair{}, model.Internal("failed to create session")
	}

	if err := a.store.Store(ctx, userID, refreshValue); err != nil {
		a.log.Error("refresh token persistence failed", "error", err)
		return model.TokenPair{}, model.Internal("failed to create session")
	}

	accessToken, err := a.jwt.Generate(userID)
	if err != nil {
		a.log.Error("access token generation failed", "error", err)
		return model.TokenPair{}, model.Internal("failed to create session")
	}

	return model.TokenPair{AccessToken: accessToken, RefreshToken: refreshValue}, nil
}
