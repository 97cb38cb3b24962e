// Package identity describes what the session providers know about the
// actor behind a request.
package identity

import (
	"cattlecloud.net/go/webguard/guard"
	"github.com/shoenig/go-conceal"
)

// UserData is the client held half of a session, e.g. a decoded cookie.
type UserData interface {
	Identity() guard.Actor
	Token() *conceal.Text
}

// UserSession is the verified session attached to a request.
//
// An inactive session has no actor; Identity returns the empty Actor.
type UserSession interface {
	Identity() guard.Actor
	Active() bool
}
