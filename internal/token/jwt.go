package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/craftfolio/portfolio-api/internal/model"
)

// Claims is the access-token payload: the subject user ID plus the
// registered expiry. Refresh tokens are opaque and never pass through
// here.
type Claims struct {
	jwt.RegisteredClaims
	Sub uuid.UUID `json:"sub"`
}

// JWT issues and verifies HMAC-signed access tokens.
type JWT struct {
	secretKey  string
	expiryHour int
}

// NewJWT creates an access-token manager signing with the given symmetric
// secret; tokens are valid for expiryHour hours.
func NewJWT(secretKey string, expiryHour int) *JWT {
	return &JWT{secretKey: secretKey, expiryHour: expiryHour}
}

// Generate creates a signed access token for userID.
func (j *JWT) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.expiryHour) * time.Hour)),
		},
		Sub: userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse verifies signature and expiry and returns the subject user ID.
// Every failure collapses into one Unauthorized outcome so callers cannot
// tell a bad signature from an expired token.
func (j *JWT) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, model.Unauthorized("invalid or expired token")
	}
	return claims.Sub, nil
}
