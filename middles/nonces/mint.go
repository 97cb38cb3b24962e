// Package nonces mints one-shot tokens bound to an actor, as used to confirm
// a password reset.
package nonces

import (
	"errors"
	"sync"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/middles/sessionstore"
	"github.com/shoenig/go-conceal"
)

var (
	ErrTokenNotValid = errors.New("token not valid")
)

// Mint issues tokens that may be consumed once, by the actor they were
// issued to, before they expire.
type Mint interface {
	Create(guard.Actor) *conceal.Text
	Consume(guard.Actor, *conceal.Text) error
}

// New creates a Mint keeping outstanding grants in cache for ttl.
//
// Expired grants are dropped by the cache; a VolatileCache needs Purge
// called periodically to reclaim grants that are never consumed.
func New(cache sessionstore.Cache[string, guard.Actor], ttl time.Duration) Mint {
	return &mint{
		lock:   new(sync.Mutex),
		grants: &sessionstore.TokenCache[guard.Actor]{Cache: cache},
		ttl:    ttl,
	}
}

type mint struct {
	lock   *sync.Mutex
	grants *sessionstore.TokenCache[guard.Actor]
	ttl    time.Duration
}

func (m *mint) Create(actor guard.Actor) *conceal.Text {
	token := conceal.UUIDv4()
	m.grants.Put(token, actor, m.ttl)
	return token
}

func (m *mint) Consume(actor guard.Actor, proposal *conceal.Text) error {
	if proposal == nil {
		return ErrTokenNotValid
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	// a token presented by any other actor is left for its owner
	owner, exists := m.grants.Get(proposal)
	if !exists || owner != actor {
		return ErrTokenNotValid
	}

	m.grants.Delete(proposal)
	return nil
}
