package server

import (
	"context"
	"sync"
	"time"

	"cattlecloud.net/go/webguard/guard"
	"cattlecloud.net/go/webguard/logs"
	"go.uber.org/zap"
)

// Accounts is the account backend that owns credentials. The server only
// asks it to apply a password reset once the actor has been authorized.
type Accounts interface {
	ResetPassword(ctx context.Context, actor guard.Actor, password string) error
}

// MemoryAccounts is an Accounts for development; it records when each actor
// last reset their password and discards the password itself.
type MemoryAccounts struct {
	lock   sync.Mutex
	resets map[guard.Actor]time.Time
	clock  func() time.Time
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		resets: make(map[guard.Actor]time.Time),
		clock:  time.Now,
	}
}

func (ma *MemoryAccounts) ResetPassword(ctx context.Context, actor guard.Actor, _ string) error {
	if err := guard.AuthorizePasswordReset(actor); err != nil {
		return err
	}

	now := ma.clock()

	ma.lock.Lock()
	ma.resets[actor] = now
	ma.lock.Unlock()

	logs.Info(ctx, "password reset", zap.String("actor", actor.String()))
	return nil
}

// LastReset returns when actor last reset their password.
func (ma *MemoryAccounts) LastReset(actor guard.Actor) (time.Time, bool) {
	ma.lock.Lock()
	defer ma.lock.Unlock()

	when, exists := ma.resets[actor]
	return when, exists
}
