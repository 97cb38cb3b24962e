package middles

import (
	"errors"
	"net/http"

	"cattlecloud.net/go/webguard"
	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/logs"
	"cattlecloud.net/go/webguard/routes"
	"go.uber.org/zap"
)

// Check is one of the guard functions, e.g. guard.RequireActor.
type Check func(guard.Actor) error

// Require gates Next on Check passing for the actor of the request's
// session.
//
// A failed check never reaches Next. Browsers are redirected to LoginPath,
// remembering where they were headed; every other client, and every request
// under the JSON API, receives a 401 with a JSON error body.
type Require struct {
	Check     Check
	LoginPath string
	Next      http.Handler
}

func (rq *Require) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := rq.Check(ActorOf(r))
	switch {
	case err == nil:
		rq.Next.ServeHTTP(w, r)
	case errors.Is(err, guard.ErrUnauthenticated):
		origin := webguard.Origins(r)
		logs.Info(r.Context(), "unauthenticated request",
			zap.String("method", origin.Method),
			zap.String("path", r.URL.Path),
			zap.String("client", origin.Client(r)),
			zap.String("agent", origin.String()),
		)
		Unauthenticated(w, r, rq.LoginPath, err)
	default:
		logs.Error(r.Context(), "authorization check failed", zap.Error(err))
		webguard.SetNoStore(w)
		_ = webguard.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// Unauthenticated writes the response for a request that failed a guard
// check with err.
func Unauthenticated(w http.ResponseWriter, r *http.Request, loginPath string, err error) {
	webguard.SetNoStore(w)

	if loginPath != "" && !routes.IsAPI(r.URL.Path) && webguard.WantsHTML(r) {
		http.Redirect(w, r, webguard.LoginURL(loginPath, r.URL.RequestURI()), http.StatusSeeOther)
		return
	}

	if werr := webguard.WriteError(w, http.StatusUnauthorized, err.Error()); werr != nil {
		logs.Warn(r.Context(), "unable to write response", zap.Error(werr))
	}
}

// RequireActor gates next on the request having an authenticated actor.
func RequireActor(loginPath string, next http.Handler) http.Handler {
	return &Require{Check: guard.RequireActor, LoginPath: loginPath, Next: next}
}

// RequirePasswordReset gates next on the actor being allowed to reset their
// password.
func RequirePasswordReset(loginPath string, next http.Handler) http.Handler {
	return &Require{Check: guard.AuthorizePasswordReset, LoginPath: loginPath, Next: next}
}

// RequirePrivileged gates next on the actor being allowed to perform a
// privileged operation.
func RequirePrivileged(loginPath string, next http.Handler) http.Handler {
	return &Require{Check: guard.AuthorizePrivilegedOperation, LoginPath: loginPath, Next: next}
}
