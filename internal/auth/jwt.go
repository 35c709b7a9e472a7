package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/torchtask/taskhub/internal/apperror"
)

type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueToken signs a bearer token carrying the user id. Tokens are opaque to
// the client and expire after the manager's TTL (7 days in production).
func (m *Manager) IssueToken(userID int64) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ResolveToken verifies signature and expiry and returns the claims.
func (m *Manager) ResolveToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, apperror.NewInvalidToken(err)
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid || claims.UserID <= 0 {
		return nil, apperror.NewInvalidToken(errors.New("invalid claims"))
	}

	return claims, nil
}
