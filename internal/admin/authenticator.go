package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks an admin email/password pair. The dish code never sees it, so a
// real credential store can replace StaticAuthenticator without touching the menu API.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// StaticAuthenticator accepts exactly one configured pair. Email match is
// case-insensitive; the password is compared in constant time.
type StaticAuthenticator struct {
	email    string
	password string
}

func NewStaticAuthenticator(email, password string) *StaticAuthenticator {
	return &StaticAuthenticator{email: strings.ToLower(strings.TrimSpace(email)), password: password}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, email, password string) error {
	if a.email == "" || a.password == "" {
		return ErrInvalidCredentials
	}
	e := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(e), []byte(a.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !emailOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
