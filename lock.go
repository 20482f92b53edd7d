// Interruptible mutual exclusion for the store.
//
// One lock serializes every operation on a Store: reads, writes, trims and
// each scanner wake. It is a cap-1 token channel rather than a sync.Mutex
// so that a caller waiting for the token can abandon the wait when its
// context is cancelled. Nothing holds the lock across a blocking point, so
// waits are bounded by the longest single operation.
package quanta

import "context"

// lock is a mutex whose acquisition can be interrupted.
type lock struct {
	ch chan struct{}
}

func newLock() *lock {
	return &lock{ch: make(chan struct{}, 1)}
}

// acquire takes the lock, or returns ErrInterrupted if ctx is cancelled
// first. A context that is already cancelled fails even when the lock is
// free, so callers see a consistent result regardless of contention.
func (l *lock) acquire(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrInterrupted
	}
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ErrInterrupted
	}
}

func (l *lock) release() {
	<-l.ch
}
