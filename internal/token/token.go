// Package token issues and verifies the HS256 access tokens used by the API.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the identity encoded in an access token.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Maker signs and parses access tokens with a single symmetric key.
// The key is resolved once at construction: an explicitly configured
// secret wins, then the APP_JWT_SECRET environment variable, and as a
// last resort a random key is generated. A random key means tokens do
// not survive a restart, which is acceptable for development only.
type Maker struct {
	key []byte
	ttl time.Duration
}

func NewMaker(secret string, ttl time.Duration) (*Maker, error) {
	if secret == "" {
		secret = os.Getenv("APP_JWT_SECRET")
	}

	key := []byte(secret)

	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating signing key: %w", err)
		}
	}

	return &Maker{key: key, ttl: ttl}, nil
}

// Issue returns a signed token for the given user along with its expiry.
func (m *Maker) Issue(userID int, isAdmin bool) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(m.ttl)

	claims := Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// Parse validates the token signature and expiry and returns its claims.
func (m *Maker) Parse(tokenString string) (*Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return m.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

// UserID returns the numeric subject of the claims.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return id, nil
}
