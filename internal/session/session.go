// Package session holds the authenticated session: the bearer token kept in
// local storage and the claims it carries.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"

	"mytasks/internal/service"
)

// TokenKey is the fixed storage key of the bearer token.
const TokenKey = "token"

// KV is the persistent key/value storage the session lives in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Session is passed explicitly to everything that makes authenticated calls.
// The token is read from storage on every call, never cached.
type Session struct {
	kv KV
}

// New returns a session over kv.
func New(kv KV) *Session {
	return &Session{kv: kv}
}

// Token returns the stored token, or service.ErrNotLoggedIn.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return "", service.ErrNotLoggedIn
	}
	return token, nil
}

// LoggedIn reports whether a token is stored.
func (s *Session) LoggedIn(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// Save stores token.
func (s *Session) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return s.kv.Set(ctx, TokenKey, token)
}

// Clear removes the stored token.
func (s *Session) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

// Claims decodes the stored token.
func (s *Session) Claims(ctx context.Context) (Claims, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	return DecodeClaims(token)
}

// TokenSource adapts the session to oauth2 so that an oauth2.Transport
// attaches "Authorization: Bearer <token>" to each request.
func (s *Session) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, s: s}
}

type tokenSource struct {
	ctx context.Context
	s   *Session
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	token, err := ts.s.Token(ts.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// Claims is the decoded content of a bearer token.
type Claims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Raw       jwt.MapClaims
}

// Expired reports whether the token carries an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// DecodeClaims reads the claim set of a JWT without verifying its signature.
// The client has no key to verify with; the backend does that on every call.
func DecodeClaims(token string) (Claims, error) {
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, raw); err != nil {
		return Claims{}, fmt.Errorf("token is not a decodable JWT: %w", err)
	}

	c := Claims{Raw: raw}
	for _, key := range []string{"sub", "id", "_id", "userId"} {
		if v, ok := raw[key].(string); ok && v != "" {
			c.Subject = v
			break
		}
	}
	if v, ok := raw["email"].(string); ok {
		c.Email = v
	}
	if v, ok := raw["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(v), 0).UTC()
	}
	if v, ok := raw["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(v), 0).UTC()
	}
	return c, nil
}
