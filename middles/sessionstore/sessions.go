// Package sessionstore issues and verifies cookie backed login sessions.
//
// A session is a random token stored in a Cache alongside the actor it was
// issued to. The client holds both in its cookie; a request is only trusted
// when the cookie's actor matches what the cache recorded for the token.
package sessionstore

import (
	"errors"
	"net/http"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"github.com/shoenig/go-conceal"
)

var (
	// ErrNotFound indicates no session exists for the token, either because it
	// was never issued, it expired, or it was revoked.
	ErrNotFound = errors.New("session: not found")

	// ErrNotMatch indicates the stored session does not match the session from
	// the request, likely indicating a malicious user fudging a session value.
	ErrNotMatch = errors.New("session: not a match")
)

type Sessions struct {
	Cache         Cache[*conceal.Text, guard.Actor]
	CookieFactory *CookieFactory
}

// New creates Sessions backed by cache, minting cookies of the given name.
func New(cache Cache[*conceal.Text, guard.Actor], name string, secure bool) *Sessions {
	return &Sessions{
		Cache: cache,
		CookieFactory: &CookieFactory{
			Name:   name,
			Secure: secure,
			Clock:  time.Now,
		},
	}
}

// Create issues a new session for id and returns the cookie to hand to the
// client.
func (s *Sessions) Create(id guard.Actor, ttl time.Duration) *http.Cookie {
	token := conceal.UUIDv4()
	cookie := s.CookieFactory.Create(id, token, ttl)
	s.Cache.Put(token, id, ttl)
	return cookie
}

func (s *Sessions) Match(id guard.Actor, token *conceal.Text) error {
	actual, exists := s.Cache.Get(token)

	switch {
	case !exists:
		return ErrNotFound
	case id != actual:
		return ErrNotMatch
	default:
		return nil
	}
}

// Revoke ends the session associated with token, e.g. on logout. Revoking an
// unknown token is not an error.
func (s *Sessions) Revoke(token *conceal.Text) {
	s.Cache.Delete(token)
}

// Expire returns a cookie that clears the session cookie on the client.
func (s *Sessions) Expire() *http.Cookie {
	return s.CookieFactory.Expire()
}

// Name of the session cookie.
func (s *Sessions) Name() string {
	return s.CookieFactory.Name
}
