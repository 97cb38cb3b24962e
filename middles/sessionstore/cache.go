package sessionstore

import (
	"sync"
	"time"

	"github.com/shoenig/go-conceal"
)

// Cache could be implemented using an in-memory cache, a memcached instance,
// or even persistent storage.
type Cache[K, T any] interface {
	Get(K) (T, bool)
	Put(K, T, time.Duration)
	Delete(K)
}

type item[T any] struct {
	value      T
	expiration time.Time
}

// NewVolatileCache creates an in-memory implementation of Cache keyed by
// session token.
func NewVolatileCache[T any](size int) *VolatileCache[T] {
	return NewVolatileCacheClock[T](size, time.Now)
}

// NewVolatileCacheClock is NewVolatileCache with expiry measured against
// clock.
func NewVolatileCacheClock[T any](size int, clock func() time.Time) *VolatileCache[T] {
	return &VolatileCache[T]{
		lock:  new(sync.Mutex),
		data:  make(map[string]*item[T], size),
		clock: clock,
	}
}

// VolatileCache is an in-memory implementation of Cache.
//
// Any process restart logs everyone out. Expired sessions are purged lazily
// when looked up, or in bulk by Purge.
type VolatileCache[T any] struct {
	lock  *sync.Mutex
	data  map[string]*item[T]
	clock func() time.Time
}

func (vc *VolatileCache[T]) Get(key string) (T, bool) {
	now := vc.clock()

	vc.lock.Lock()
	defer vc.lock.Unlock()

	var empty T

	it, exists := vc.data[key]
	if !exists {
		return empty, false
	}

	if now.After(it.expiration) {
		delete(vc.data, key)
		return empty, false
	}

	return it.value, true
}

func (vc *VolatileCache[T]) Put(key string, value T, ttl time.Duration) {
	now := vc.clock()

	vc.lock.Lock()
	defer vc.lock.Unlock()

	vc.data[key] = &item[T]{
		expiration: now.Add(ttl),
		value:      value,
	}
}

func (vc *VolatileCache[T]) Delete(key string) {
	vc.lock.Lock()
	defer vc.lock.Unlock()

	delete(vc.data, key)
}

// Purge removes every expired entry, returning how many were removed.
func (vc *VolatileCache[T]) Purge() int {
	now := vc.clock()

	vc.lock.Lock()
	defer vc.lock.Unlock()

	removed := 0
	for key, it := range vc.data {
		if now.After(it.expiration) {
			delete(vc.data, key)
			removed++
		}
	}
	return removed
}

// TokenCache adapts a string keyed Cache into one keyed by concealed session
// tokens, so the raw token is only unveiled at the storage boundary.
type TokenCache[T any] struct {
	Cache Cache[string, T]
}

func (tc *TokenCache[T]) Get(token *conceal.Text) (T, bool) {
	return tc.Cache.Get(token.Unveil())
}

func (tc *TokenCache[T]) Put(token *conceal.Text, value T, ttl time.Duration) {
	tc.Cache.Put(token.Unveil(), value, ttl)
}

func (tc *TokenCache[T]) Delete(token *conceal.Text) {
	tc.Cache.Delete(token.Unveil())
}
