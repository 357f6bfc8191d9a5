package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// sessionClaims is the token payload. The user ID travels as "_id" so
// tokens stay compatible with clients of the previous backend.
type sessionClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// SessionIssuer issues HS256 tokens bound to a user ID. Tokens are not
// stored anywhere: validity is signature plus expiry only.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the lifetime given to every issued token.
func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

func (s *SessionIssuer) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("issue token: empty user id")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *SessionIssuer) Verify(token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}
