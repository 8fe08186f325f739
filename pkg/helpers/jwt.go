package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single validation failure exposed by Validate.
// Bad signature, expiry, malformed encoding and an unparseable subject are
// deliberately not distinguished to the caller.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates signed bearer tokens. The secret is
// fixed at construction and never mutated, so a single manager is safe for
// concurrent use across requests.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the given user as subject, valid from now
// until now plus the configured TTL.
func (m *TokenManager) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// ValidateSubject verifies the signature and expiry of tokenStr and returns
// the raw subject claim. Callers that need an identifier parse it themselves;
// every verification failure maps to ErrInvalidToken.
func (m *TokenManager) ValidateSubject(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Validate verifies tokenStr like ValidateSubject and parses the subject
// into a user id. An unparseable subject also maps to ErrInvalidToken.
func (m *TokenManager) Validate(tokenStr string) (uuid.UUID, error) {
	sub, err := m.ValidateSubject(tokenStr)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
