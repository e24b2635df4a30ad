package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/menuhub/dish-service/internal/sessions"
	"github.com/menuhub/dish-service/internal/tokens"
)

// ErrNoSession means the presented marker does not name a live session.
var ErrNoSession = errors.New("no admin session")

// Gate issues and checks the admin session marker: a signed token naming a server-side
// session.
type Gate struct {
	auth     Authenticator
	sessions *sessions.Service
	secret   []byte
	ttl      time.Duration
}

func NewGate(auth Authenticator, s *sessions.Service, secret []byte, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{auth: auth, sessions: s, secret: secret, ttl: ttl}
}

// TTL is how long an issued marker stays valid.
func (g *Gate) TTL() time.Duration { return g.ttl }

// Login authenticates the pair and returns the marker to set as a cookie.
func (g *Gate) Login(ctx context.Context, email, password string) (string, *sessions.Session, error) {
	if err := g.auth.Authenticate(ctx, email, password); err != nil {
		return "", nil, err
	}
	sess, err := g.sessions.CreateSession(ctx, email, g.ttl)
	if err != nil {
		return "", nil, err
	}
	tok, err := tokens.GenerateAdminToken(g.secret, sess.Subject, sess.ID, sess.ExpiresAt)
	if err != nil {
		_ = g.sessions.Delete(ctx, sess.ID)
		return "", nil, fmt.Errorf("sign admin token: %w", err)
	}
	return tok, sess, nil
}

// Verify resolves a marker to its live session.
func (g *Gate) Verify(ctx context.Context, raw string) (*sessions.Session, error) {
	claims, err := tokens.ParseAdminToken(g.secret, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	sess, err := g.sessions.Validate(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Logout ends the session behind a verified marker.
func (g *Gate) Logout(ctx context.Context, sess *sessions.Session) error {
	return g.sessions.Delete(ctx, sess.ID)
}
