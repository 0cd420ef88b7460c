package game

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type lockOwnerKey struct{}

// WithLockOwner tags ctx with an owner identity so nested WithLock calls for
// the same game re-enter instead of deadlocking. The HTTP layer assigns one
// owner per request.
func WithLockOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, lockOwnerKey{}, owner)
}

func lockOwner(ctx context.Context) string {
	if owner, ok := ctx.Value(lockOwnerKey{}).(string); ok && owner != "" {
		return owner
	}
	return ""
}

type lockState struct {
	owner string
	depth int
}

// Locker serializes mutations per game code with an advisory, re-entrant
// lock. Acquisition polls with a bounded retry budget and fails with
// ErrLockTimeout when exhausted; callers treat that as retryable.
type Locker struct {
	retries int
	period  time.Duration

	mu    chan struct{} // guards locks; channel so waits honor ctx
	locks map[string]*lockState
}

func NewLocker(retries int, period time.Duration) *Locker {
	l := &Locker{
		retries: retries,
		period:  period,
		mu:      make(chan struct{}, 1),
		locks:   make(map[string]*lockState),
	}
	l.mu <- struct{}{}
	return l
}

// WithLock runs fn while holding the lock for code, releasing it on every
// exit path.
func (l *Locker) WithLock(ctx context.Context, code string, fn func(ctx context.Context) error) error {
	owner := lockOwner(ctx)
	if owner == "" {
		owner = uuid.NewString()
		ctx = WithLockOwner(ctx, owner)
	}
	if err := l.acquire(ctx, code, owner); err != nil {
		return err
	}
	defer l.release(code, owner)
	return fn(ctx)
}

func (l *Locker) acquire(ctx context.Context, code, owner string) error {
	for attempt := 0; attempt < l.retries; attempt++ {
		select {
		case <-l.mu:
		case <-ctx.Done():
			return ctx.Err()
		}
		state, held := l.locks[code]
		switch {
		case !held:
			l.locks[code] = &lockState{owner: owner, depth: 1}
			l.mu <- struct{}{}
			return nil
		case state.owner == owner:
			state.depth++
			l.mu <- struct{}{}
			return nil
		}
		l.mu <- struct{}{}

		select {
		case <-time.After(l.period):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ErrLockTimeout
}

func (l *Locker) release(code, owner string) {
	<-l.mu
	defer func() { l.mu <- struct{}{} }()
	state, held := l.locks[code]
	if !held || state.owner != owner {
		return
	}
	state.depth--
	if state.depth <= 0 {
		delete(l.locks, code)
	}
}
