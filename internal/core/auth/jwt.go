package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity is what a token vouches for.
type Identity struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

type Claims struct {
	UID     string `json:"uid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{ID: c.UID, Name: c.Name, Email: c.Email, IsAdmin: c.IsAdmin}
}

// Revoker remembers token ids that must no longer be accepted.
// A ttl of 0 keeps the entry forever.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTer signs and verifies HS256 tokens. It is built once at startup and not
// mutated afterwards; changing Secret requires a restart and invalidates every
// token issued before.
type JWTer struct {
	Secret []byte
	Issuer string
	// TTL <= 0 issues tokens without expiry.
	TTL     time.Duration
	Revoked Revoker
	Now     func() time.Time
}

func (j *JWTer) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *JWTer) Issue(id Identity) (string, error) {
	now := j.now()
	claims := Claims{
		UID:     id.ID,
		Name:    id.Name,
		Email:   id.Email,
		IsAdmin: id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  id.ID,
			Issuer:   j.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if j.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(j.TTL))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.Issuer),
		jwt.WithLeeway(60 * time.Second),
		jwt.WithTimeFunc(j.now),
	}
	if j.TTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.UID == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// Authenticate verifies a raw header value. It returns ErrMissingToken when the
// value is blank and ErrInvalidToken when it does not verify or was revoked.
func (j *JWTer) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingToken
	}
	c, err := j.Parse(raw)
	if err != nil {
		return nil, err
	}
	if j.Revoked != nil && c.ID != "" {
		revoked, err := j.Revoked.IsRevoked(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}
	return c, nil
}

// Revoke denies c until it would have expired anyway.
func (j *JWTer) Revoke(ctx context.Context, c *Claims) error {
	if j.Revoked == nil {
		return errors.New("revocation is not configured")
	}
	var ttl time.Duration
	if c.ExpiresAt != nil {
		ttl = c.ExpiresAt.Sub(j.now())
		if ttl <= 0 {
			return nil
		}
	}
	return j.Revoked.Revoke(ctx, c.ID, ttl)
}
