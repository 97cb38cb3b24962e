// Package middles provides the net/http middleware of the web tier.
//
// SetSession and SetBearer establish the actor of a request; Require gates
// privileged routes on that actor.
package middles

import (
	"context"
	"net/http"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/logs"
	"cattlecloud.net/go/webguard/middles/identity"
	"cattlecloud.net/go/webguard/middles/sessionstore"
	"github.com/shoenig/go-conceal"
	"go.uber.org/zap"
)

// Sessions is the session store SetSession verifies cookies against;
// sessionstore.Sessions is the implementation.
type Sessions interface {
	Create(guard.Actor, time.Duration) *http.Cookie
	Match(guard.Actor, *conceal.Text) error
}

// GetSession extracts the user session out of the http.Request.
//
// If no session is found, an identity.UserSession where .Active() always
// returns false is returned, indicating there is no session.
func GetSession(r *http.Request) identity.UserSession {
	value, ok := r.Context().Value(sessionContextKey).(identity.UserSession)
	if !ok {
		return inactive
	}
	return value
}

// ActorOf returns the actor of the request's session, or the empty Actor
// when the session is not active.
func ActorOf(r *http.Request) guard.Actor {
	s := GetSession(r)
	if !s.Active() {
		return ""
	}
	return s.Identity()
}

// WithSession returns a copy of r carrying s.
func WithSession(r *http.Request, s identity.UserSession) *http.Request {
	ctx := context.WithValue(r.Context(), sessionContextKey, s)
	return r.WithContext(ctx)
}

type userSessionKey struct{}

var sessionContextKey = userSessionKey{}

var inactive identity.UserSession = &session{active: false}

// SetSession establishes the session of each request from its session
// cookie before handing the request to Next.
type SetSession struct {
	SessionCookieName string
	Sessions          Sessions
	Next              http.Handler
}

func (ss *SetSession) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	abort := func(reason string) {
		logs.Debug(r.Context(), "no session", zap.String("reason", reason))
		// explicitly set inactive; ensuring no operation requiring a session works
		ss.Next.ServeHTTP(w, WithSession(r, inactive))
	}

	// try to get a cookie from the request
	cookie, cerr := r.Cookie(ss.SessionCookieName)
	if cerr != nil {
		abort("no cookie")
		return
	}

	// there is a cookie, now we must verify the cookie is legit
	data, derr := sessionstore.Decode(cookie.Value)
	if derr != nil {
		abort("malformed cookie")
		return
	}

	if err := guard.RequireActor(data.Identity()); err != nil {
		abort("cookie without actor")
		return
	}

	// lookup the associated session token from cache
	if merr := ss.Sessions.Match(data.Identity(), data.Token()); merr != nil {
		// probably malicious or expired; assume no session
		abort(merr.Error())
		return
	}

	live := &session{id: data.Identity(), token: data.Token(), active: true}
	ctx := logs.With(r.Context(), zap.String("actor", live.id.String()))
	ss.Next.ServeHTTP(w, WithSession(r.WithContext(ctx), live))
}

// session is a minimal implementation of identity.UserSession; useful for
// allowing an actor based session to be recognized as active or not.
type session struct {
	id     guard.Actor
	token  *conceal.Text
	active bool
}

func (s *session) Identity() guard.Actor {
	return s.id
}

func (s *session) Active() bool {
	return s.active
}

// Token returns the session token of a cookie session, or nil.
func (s *session) Token() *conceal.Text {
	return s.token
}

// SessionToken returns the token of the request's cookie session, if the
// request has one.
func SessionToken(r *http.Request) (*conceal.Text, bool) {
	s := GetSession(r)
	holder, ok := s.(interface{ Token() *conceal.Text })
	if !ok || !s.Active() {
		return nil, false
	}
	token := holder.Token()
	return token, token != nil
}
