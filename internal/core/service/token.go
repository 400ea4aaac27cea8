package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/testbot/testbot-api/internal/core/domain"
)

// SessionTTL is the fixed validity window of an issued token.
const SessionTTL = 8 * time.Hour

type sessionClaims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
}

// Issue signs a token for id that expires SessionTTL from now.
func (m *TokenManager) Issue(id domain.Identity) (string, error) {
	now := m.now()
	claims := sessionClaims{
		ID:   id.ID,
		Name: id.Name,
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate returns the identity embedded in token. Any parse, signature or
// expiry failure is reported as domain.ErrInvalidToken.
func (m *TokenManager) Validate(token string) (*domain.Identity, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{ID: claims.ID, Name: claims.Name, Role: claims.Role}, nil
}
