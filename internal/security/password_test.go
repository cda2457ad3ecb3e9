package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftfolio/portfolio-api/internal/model"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("Sup3rsecret!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
}

func TestHashPassword_SaltVaries(t *testing.T) {
	h1, err := HashPassword("Sup3rsecret!")
	require.NoError(t, err)
	h2, err := HashPassword("Sup3rsecret!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rsecret!")
	require.NoError(t, err)

	t.Run("correct", func(t *testing.T) {
		assert.NoError(t, VerifyPassword("Sup3rsecret!", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := VerifyPassword("Wr0ngsecret!", hash)
		require.Error(t, err)
		assert.Equal(t, model.KindUnauthorized, model.KindOf(err))
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("malformed hash", func(t *testing.T) {
		err := VerifyPassword("Sup3rsecret!", "not-a-hash")
		require.Error(t, err)
		assert.Equal(t, model.KindUnauthorized, model.KindOf(err))
	})
}

func TestNewRefreshToken(t *testing.T) {
	t1, err := NewRefreshToken()
	require.NoError(t, err)
	t2, err := NewRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, t1)
	assert.NotEqual(t, t1, t2)
	// 32 bytes base64url without padding
	assert.Len(t, t1, 43)
}
