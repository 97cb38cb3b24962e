// Package server is the HTTP front of the language learning web client,
// wiring session providers, route guards and handlers together.
package server

import (
	"net/http"
	"strings"
	"time"

	"cattlecloud.net/go/webguard"
	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/internal/config"
	"cattlecloud.net/go/webguard/logs"
	"cattlecloud.net/go/webguard/middles"
	"cattlecloud.net/go/webguard/middles/nonces"
	"cattlecloud.net/go/webguard/middles/sessionstore"
	"cattlecloud.net/go/webguard/routes"
	"github.com/go-faster/jx"
	"github.com/shoenig/go-conceal"
	"go.uber.org/zap"
)

// minPassword is the shortest password accepted on reset, in bytes.
const minPassword = 10

// tokenTTL is the lifetime of API bearer tokens issued to a session.
const tokenTTL = 1 * time.Hour

// resetTTL is how long a password reset token may wait to be confirmed.
const resetTTL = 15 * time.Minute

type Server struct {
	cfg      *config.Config
	sessions *sessionstore.Sessions
	cache    *sessionstore.VolatileCache[guard.Actor]
	grants   *sessionstore.VolatileCache[guard.Actor]
	resets   nonces.Mint
	accounts Accounts
	clock    func() time.Time
	handler  http.Handler
}

// New creates a Server from cfg. Requests are logged to logger.
func New(cfg *config.Config, logger *zap.Logger, accounts Accounts) *Server {
	cache := sessionstore.NewVolatileCache[guard.Actor](cfg.Session.CacheSize)
	grants := sessionstore.NewVolatileCache[guard.Actor](cfg.Session.CacheSize)
	s := &Server{
		cfg: cfg,
		sessions: sessionstore.New(
			&sessionstore.TokenCache[guard.Actor]{Cache: cache},
			cfg.Session.CookieName,
			!cfg.Session.Insecure,
		),
		cache:    cache,
		grants:   grants,
		resets:   nonces.New(grants, resetTTL),
		accounts: accounts,
		clock:    time.Now,
	}

	var next http.Handler = s.routes()
	if cfg.Bearer.Secret != "" {
		next = &middles.SetBearer{
			Secret: []byte(cfg.Bearer.Secret),
			Issuer: cfg.Bearer.Issuer,
			Next:   next,
		}
	}

	s.handler = &middles.AccessLog{
		Logger: logger,
		Next: &middles.SetSession{
			SessionCookieName: cfg.Session.CookieName,
			Sessions:          s.sessions,
			Next:              next,
		},
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Purge drops expired sessions and password reset grants, returning how
// many were dropped.
func (s *Server) Purge() int {
	return s.cache.Purge() + s.grants.Purge()
}

func (s *Server) routes() http.Handler {
	login := s.cfg.Session.LoginPath

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routes.Health, s.health)
	if s.cfg.Environment == logs.Development {
		mux.HandleFunc("POST "+routes.Login, s.login)
	}
	mux.HandleFunc("POST "+routes.Logout, s.logout)
	mux.HandleFunc("GET "+routes.Lessons, s.lessons)
	mux.Handle("GET "+routes.Progress, middles.RequireActor(login, http.HandlerFunc(s.progress)))
	mux.Handle("GET "+routes.Settings, middles.RequirePrivileged(login, http.HandlerFunc(s.settings)))
	mux.Handle("POST "+routes.PasswordReset, middles.RequirePasswordReset(login, http.HandlerFunc(s.resetRequest)))
	mux.Handle("POST "+routes.PasswordConfirm, middles.RequirePasswordReset(login, http.HandlerFunc(s.resetConfirm)))
	mux.Handle("POST "+routes.APIPrefix+"token", middles.RequirePrivileged(login, http.HandlerFunc(s.token)))
	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	_ = webguard.WriteMessage(w, http.StatusOK, "ok")
}

// login establishes a session for the named actor without checking any
// credential. It stands in for the identity provider in development and is
// not routed in any other environment.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	actor := guard.Actor(strings.TrimSpace(r.PostFormValue("name")))
	if err := guard.RequireActor(actor); err != nil {
		_ = webguard.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	http.SetCookie(w, s.sessions.Create(actor, s.cfg.Session.TTL))
	logs.Info(r.Context(), "login", zap.String("actor", actor.String()))

	webguard.SetNoStore(w)
	if webguard.WantsHTML(r) {
		next := r.PostFormValue("next")
		if !webguard.IsLocal(next) {
			next = routes.Lessons
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	_ = webguard.WriteMessage(w, http.StatusOK, "logged in")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middles.SessionToken(r); ok {
		s.sessions.Revoke(token)
	}
	http.SetCookie(w, s.sessions.Expire())

	webguard.SetNoStore(w)
	if webguard.WantsHTML(r) {
		http.Redirect(w, r, routes.Home, http.StatusSeeOther)
		return
	}
	_ = webguard.WriteMessage(w, http.StatusOK, "logged out")
}

func (s *Server) lessons(w http.ResponseWriter, r *http.Request) {
	links := routes.Visible(middles.ActorOf(r).Present())
	_ = webguard.WriteJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("navigation")
		e.ArrStart()
		for _, link := range links {
			e.ObjStart()
			e.FieldStart("title")
			e.Str(link.Title)
			e.FieldStart("path")
			e.Str(link.Path)
			e.ObjEnd()
		}
		e.ArrEnd()
		e.ObjEnd()
	})
}

func (s *Server) progress(w http.ResponseWriter, r *http.Request) {
	webguard.SetNoStore(w)
	writeActor(w, middles.ActorOf(r))
}

func (s *Server) settings(w http.ResponseWriter, r *http.Request) {
	webguard.SetNoStore(w)
	webguard.SetRobotsTag(w, webguard.RobotsNoIndex)
	writeActor(w, middles.ActorOf(r))
}

// resetRequest issues a one-shot token the actor must present to confirm a
// password reset.
func (s *Server) resetRequest(w http.ResponseWriter, r *http.Request) {
	actor := middles.ActorOf(r)
	token := s.resets.Create(actor)

	webguard.SetNoStore(w)
	_ = webguard.WriteJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("token")
		e.Str(token.Unveil())
		e.ObjEnd()
	})
}

func (s *Server) resetConfirm(w http.ResponseWriter, r *http.Request) {
	actor := middles.ActorOf(r)
	webguard.SetNoStore(w)

	password := r.PostFormValue("password")
	if len(password) < minPassword {
		_ = webguard.WriteError(w, http.StatusBadRequest, "password is too short")
		return
	}

	token := conceal.New(r.PostFormValue("token"))
	if err := s.resets.Consume(actor, token); err != nil {
		_ = webguard.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.accounts.ResetPassword(r.Context(), actor, password); err != nil {
		logs.Error(r.Context(), "password reset failed", zap.Error(err))
		_ = webguard.WriteError(w, http.StatusInternalServerError, "password reset failed")
		return
	}

	_ = webguard.WriteMessage(w, http.StatusOK, "password updated")
}

// token issues a bearer token for the session's actor, for API clients.
func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	webguard.SetNoStore(w)

	if s.cfg.Bearer.Secret == "" {
		_ = webguard.WriteError(w, http.StatusNotFound, "bearer tokens are disabled")
		return
	}

	signed, err := middles.IssueBearer(
		[]byte(s.cfg.Bearer.Secret),
		s.cfg.Bearer.Issuer,
		middles.ActorOf(r),
		s.clock(),
		tokenTTL,
	)
	if err != nil {
		logs.Error(r.Context(), "unable to issue token", zap.Error(err))
		_ = webguard.WriteError(w, http.StatusInternalServerError, "unable to issue token")
		return
	}

	_ = webguard.WriteJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("token")
		e.Str(signed)
		e.FieldStart("expires_in")
		e.Int(int(tokenTTL.Seconds()))
		e.ObjEnd()
	})
}

func writeActor(w http.ResponseWriter, actor guard.Actor) {
	_ = webguard.WriteJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("actor")
		e.Str(actor.String())
		e.ObjEnd()
	})
}
