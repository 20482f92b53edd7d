// Package quanta provides a growable, randomly-addressable in-memory byte
// store with a periodic word scanner attached. Bytes are kept in fixed-size
// blocks grouped into segments, both allocated lazily on first write —
// ranges that were never written are holes and read back as no data rather
// than zeroes. A background scanner walks the stored bytes one word per
// wake and emits each word to a log sink, restarting from the front when it
// reaches the end.
//
// All operations on a Store serialize on one lock. Acquisition is
// interruptible: every blocking call takes a context, and cancellation
// during the wait surfaces as ErrInterrupted with no mutation performed.
// Sessions opened on the store carry their own private offset; opening a
// session write-only truncates the store first.
package quanta

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish retryable conditions (ErrInterrupted, ErrNoMemory) from
// terminal ones (ErrClosed) and from failures of a foreign endpoint
// mid-copy (ErrTransfer).
var (
	ErrInterrupted    = errors.New("lock acquisition interrupted")
	ErrNoMemory       = errors.New("memory budget exceeded")
	ErrTransfer       = errors.New("transfer failed")
	ErrClosed         = errors.New("store is closed")
	ErrNegativeOffset = errors.New("negative offset")
	ErrWhence         = errors.New("invalid whence")
)
