package service

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session binds one Account as the target of balance and PIN operations
// until it is ended. It holds a non-owning reference; the account itself
// stays in the directory.
type Session struct {
	id        uuid.UUID
	startedAt time.Time
	account   atomic.Pointer[Account]
}

func newSession(acc *Account, now time.Time) *Session {
	s := &Session{id: uuid.New(), startedAt: now}
	s.account.Store(acc)
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) StartedAt() time.Time { return s.startedAt }

// Active reports whether the session still has an account bound.
func (s *Session) Active() bool {
	return s != nil && s.account.Load() != nil
}

// BoundAccount returns the bound account in a single load, or false once
// the session has ended.
func (s *Session) BoundAccount() (*Account, bool) {
	if s == nil {
		return nil, false
	}
	acc := s.account.Load()
	return acc, acc != nil
}

// Account returns the bound account. Calling it on a nil or ended session
// panics with ErrNoActiveSession.
func (s *Session) Account() *Account {
	if s == nil {
		panic(ErrNoActiveSession)
	}
	acc := s.account.Load()
	if acc == nil {
		panic(ErrNoActiveSession)
	}
	return acc
}

func (s *Session) end() {
	s.account.Store(nil)
}
