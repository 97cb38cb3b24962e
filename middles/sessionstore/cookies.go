package sessionstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/middles/identity"
	"github.com/shoenig/go-conceal"
)

// ErrMalformed indicates a session cookie value could not be decoded.
var ErrMalformed = errors.New("session: malformed cookie")

// CookieFactory is used to bake cookies representing an actor and the
// associated unique session token.
//
// Each cookie minted is of the same name; i.e. the name associated with the
// cookie in the requester's cookie jar (web browser / http client).
type CookieFactory struct {
	Name   string
	Secure bool
	Clock  func() time.Time
}

var _ identity.UserData = (*CookieContent)(nil)

// CookieContent is the data stored per session.
type CookieContent struct {
	UserToken string      `json:"token"`
	UserID    guard.Actor `json:"user_id"`
}

// Token returns the secret token associated with the cookie.
func (cc *CookieContent) Token() *conceal.Text {
	return conceal.New(cc.UserToken)
}

// Identity returns the actor associated with the cookie.
func (cc *CookieContent) Identity() guard.Actor {
	return cc.UserID
}

// Create the cookie.
func (cf *CookieFactory) Create(
	id guard.Actor,
	token *conceal.Text,
	ttl time.Duration,
) *http.Cookie {
	expiration := cf.Clock().Add(ttl)

	// encode the cookie payload as base64 json
	b, _ := json.Marshal(&CookieContent{
		UserToken: token.Unveil(),
		UserID:    id,
	})
	encoded := base64.StdEncoding.EncodeToString(b)

	return &http.Cookie{
		Name:     cf.Name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Expires:  expiration,
		SameSite: http.SameSiteLaxMode,
		Secure:   cf.Secure,
	}
}

// Expire creates a cookie instructing the client to drop its session cookie.
func (cf *CookieFactory) Expire() *http.Cookie {
	return &http.Cookie{
		Name:     cf.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteLaxMode,
		Secure:   cf.Secure,
	}
}

// Decode reverses Create, returning the content of a session cookie value.
//
// A cookie without a token is considered malformed; its actor is never
// trusted without a token to match against.
func Decode(value string) (*CookieContent, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, ErrMalformed
	}

	content := new(CookieContent)
	if err = json.Unmarshal(b, content); err != nil {
		return nil, ErrMalformed
	}

	if content.UserToken == "" {
		return nil, ErrMalformed
	}

	return content, nil
}
