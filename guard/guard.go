// Package guard gates privileged operations on the presence of an
// authenticated actor.
//
// The guard is a pure precondition check. It never looks up sessions itself;
// callers obtain the actor from their session provider and translate a
// failure into a response (e.g. an HTTP 401).
package guard

import (
	"errors"
	"strings"
)

// ErrUnauthenticated indicates an operation was attempted without an
// authenticated actor.
var ErrUnauthenticated = errors.New("Authentication required") //nolint:staticcheck

// Actor is the opaque identifier of an authenticated user, as issued by the
// session provider at login time.
//
// The zero value, and any value consisting only of whitespace, means no
// actor is present.
type Actor string

// Present reports whether a carries a usable identity.
func (a Actor) Present() bool {
	return strings.TrimSpace(string(a)) != ""
}

func (a Actor) String() string {
	return string(a)
}

// RequireActor returns ErrUnauthenticated unless actor is present.
func RequireActor(actor Actor) error {
	if !actor.Present() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireActorPtr is RequireActor for callers whose actor may be unset
// entirely; a nil actor is treated the same as an empty one.
func RequireActorPtr(actor *Actor) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	return RequireActor(*actor)
}

// AuthorizePasswordReset gates a password reset for actor.
func AuthorizePasswordReset(actor Actor) error {
	return RequireActor(actor)
}

// AuthorizePrivilegedOperation gates any operation requiring a non-anonymous
// actor.
func AuthorizePrivilegedOperation(actor Actor) error {
	return RequireActor(actor)
}
