// Package memory holds in-memory store implementations used by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenStore)(nil)

// RefreshTokenStore keeps refresh-token records in a map. It is safe for
// concurrent use so tests can drive it outside an actor too.
type RefreshTokenStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.RefreshToken
}

func NewRefreshTokenStore() *RefreshTokenStore {
	return &RefreshTokenStore{records: make(map[uuid.UUID]model.RefreshToken)}
}

func (s *RefreshTokenStore) Store(_ context.Context, userID uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.records[id] = model.RefreshToken{
		ID:        id,
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(model.RefreshTokenTTL),
	}
	return nil
}

func (s *RefreshTokenStore) FindByValue(_ context.Context, token string) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rt := range s.records {
		if rt.Token == token {
			return rt, nil
		}
	}
	return model.RefreshToken{}, model.NotFound("refresh token not found")
}

func (s *RefreshTokenStore) RevokeByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rt, ok := s.records[id]; ok {
		rt.Revoked = true
		s.records[id] = rt
	}
	return nil
}

func (s *RefreshTokenStore) RevokeByValue(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rt := range s.records {
		if rt.Token == token {
			rt.Revoked = true
			s.records[id] = rt
		}
	}
	return nil
}

// Expire backdates a record's expiry; test helper.
func (s *RefreshTokenStore) Expire(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, rt := range s.records {
		if rt.Token == token {
			rt.ExpiresAt = time.Now().Add(-time.Minute)
			s.records[id] = rt
		}
	}
}
