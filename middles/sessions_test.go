package middles

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/middles/sessionstore"
	"github.com/shoenig/go-conceal"
	"github.com/shoenig/test/must"
)

const cookieName = "lingo-session"

func newStore() *sessionstore.Sessions {
	cache := &sessionstore.TokenCache[guard.Actor]{
		Cache: sessionstore.NewVolatileCache[guard.Actor](8),
	}
	return sessionstore.New(cache, cookieName, false)
}

// capture records the session each request reached the handler with.
type capture struct {
	actor  guard.Actor
	active bool
	called bool
}

func (c *capture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.active = GetSession(r).Active()
	c.actor = ActorOf(r)
	w.WriteHeader(http.StatusNoContent)
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestGetSession_none(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	must.False(t, GetSession(r).Active())
	must.Eq(t, guard.Actor(""), ActorOf(r))

	_, ok := SessionToken(r)
	must.False(t, ok)
}

func TestSetSession(t *testing.T) {
	t.Parallel()

	store := newStore()
	valid := store.Create("user-123", time.Hour)

	forged := store.Create("user-123", time.Hour)
	content, err := sessionstore.Decode(forged.Value)
	must.NoError(t, err)

	factory := &sessionstore.CookieFactory{Name: cookieName, Clock: time.Now}
	forgedCookie := factory.Create("user-999", content.Token(), time.Hour)
	blank := factory.Create("   ", content.Token(), time.Hour)
	stray := factory.Create("user-123", conceal.UUIDv4(), time.Hour)

	cases := []struct {
		name   string
		cookie *http.Cookie
		active bool
		actor  guard.Actor
	}{
		{"no cookie", nil, false, ""},
		{"valid", valid, true, "user-123"},
		{"garbage", &http.Cookie{Name: cookieName, Value: "garbage"}, false, ""},
		{"not json", &http.Cookie{Name: cookieName, Value: base64.StdEncoding.EncodeToString([]byte("x"))}, false, ""},
		{"forged actor", forgedCookie, false, ""},
		{"blank actor", blank, false, ""},
		{"unknown token", stray, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := new(capture)
			h := &SetSession{SessionCookieName: cookieName, Sessions: store, Next: c}

			r := httptest.NewRequest(http.MethodGet, "/progress", nil)
			if tc.cookie != nil {
				r.AddCookie(tc.cookie)
			}
			_ = serve(h, r)

			must.True(t, c.called)
			must.Eq(t, tc.active, c.active)
			must.Eq(t, tc.actor, c.actor)
		})
	}
}

func TestSessionToken(t *testing.T) {
	t.Parallel()

	store := newStore()
	cookie := store.Create("user-123", time.Hour)
	content, err := sessionstore.Decode(cookie.Value)
	must.NoError(t, err)

	var token string
	h := &SetSession{
		SessionCookieName: cookieName,
		Sessions:          store,
		Next: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := SessionToken(r)
			must.True(t, ok)
			token = tok.Unveil()
		}),
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	_ = serve(h, r)

	must.Eq(t, content.UserToken, token)
}
