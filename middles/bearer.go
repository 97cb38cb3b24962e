package middles

import (
	"net/http"
	"strings"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/logs"
	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrBearerInvalid indicates a bearer token that could not be verified.
var ErrBearerInvalid = errors.New("bearer: token not valid")

// SetBearer establishes the session of API requests from an HS256 signed JWT
// in the Authorization header; the token subject becomes the actor.
//
// Requests without a bearer token pass through with whatever session they
// already carry, so SetBearer can wrap a SetSession handler. A bearer token
// that fails verification always results in an inactive session.
type SetBearer struct {
	Secret []byte
	Issuer string
	Next   http.Handler
}

func (sb *SetBearer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		sb.Next.ServeHTTP(w, r)
		return
	}

	actor, err := sb.Verify(raw)
	if err != nil {
		logs.Debug(r.Context(), "bearer rejected", zap.Error(err))
		sb.Next.ServeHTTP(w, WithSession(r, inactive))
		return
	}

	live := &session{id: actor, active: true}
	ctx := logs.With(r.Context(), zap.String("actor", actor.String()))
	sb.Next.ServeHTTP(w, WithSession(r.WithContext(ctx), live))
}

// Verify parses and validates raw, returning the actor named by its subject.
func (sb *SetBearer) Verify(raw string) (guard.Actor, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if sb.Issuer != "" {
		options = append(options, jwt.WithIssuer(sb.Issuer))
	}

	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return sb.Secret, nil
	}, options...)
	if err != nil {
		return "", errors.Wrap(ErrBearerInvalid, err.Error())
	}

	actor := guard.Actor(claims.Subject)
	if err = guard.RequireActor(actor); err != nil {
		return "", errors.Wrap(ErrBearerInvalid, "missing subject")
	}
	return actor, nil
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}
	return token, true
}

// IssueBearer signs a token naming actor that SetBearer with the same secret
// and issuer accepts until ttl has elapsed from now.
func IssueBearer(secret []byte, issuer string, actor guard.Actor, now time.Time, ttl time.Duration) (string, error) {
	if err := guard.RequireActor(actor); err != nil {
		return "", err
	}

	claims := jwt.RegisteredClaims{
		Subject:   actor.String(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "bearer: sign token")
	}
	return signed, nil
}
