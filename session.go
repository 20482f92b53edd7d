// Sessions: per-open positional access to a store.
//
// A session carries a private offset and delegates every transfer to the
// store. Sessions are cheap, need no synchronization of their own, and
// the store outlives all of them — Close is a no-op. Opening write-only
// truncates the store first, matching the convention that overwriting
// with shorter content must not leave a tail of the old data behind.
package quanta

import (
	"context"
	"fmt"
	"io"
)

// Session is one open handle on a store with its own offset.
type Session struct {
	store *Store
	pos   int64
}

// Open creates a session positioned at offset zero. If writeOnly is set
// the store is trimmed before the session is returned, so stale content
// never survives a rewrite.
func (s *Store) Open(ctx context.Context, writeOnly bool) (*Session, error) {
	if writeOnly {
		if err := s.Trim(ctx); err != nil {
			return nil, err
		}
	}
	return &Session{store: s}, nil
}

// Read fills p from the session offset, issuing as many block-clamped
// store reads as needed, and advances the offset by the count returned.
// It returns fewer bytes than len(p) at end of data; a hole ends the
// read the same way, since holes carry no data. A short or zero count
// with a nil error is not an error condition.
func (se *Session) Read(ctx context.Context, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := se.store.Read(ctx, p[total:], se.pos)
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		se.pos += int64(n)
		total += n
	}
	return total, nil
}

// Write stores p at the session offset and advances it by the count
// written. A single call is clamped to the block containing the offset,
// so it may write fewer bytes than supplied; callers loop, or use
// ReadFrom which loops for them.
func (se *Session) Write(ctx context.Context, p []byte) (int, error) {
	n, err := se.store.Write(ctx, p, se.pos)
	se.pos += int64(n)
	return n, err
}

// Seek repositions the session offset in the usual io.Seeker forms.
// Seeking before offset zero fails with ErrNegativeOffset; seeking past
// the end is allowed and a later write there leaves a hole behind it.
func (se *Session) Seek(ctx context.Context, offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = se.pos
	case io.SeekEnd:
		size, err := se.store.Size(ctx)
		if err != nil {
			return 0, err
		}
		base = size
	default:
		return 0, ErrWhence
	}
	next := base + offset
	if next < 0 {
		return 0, ErrNegativeOffset
	}
	se.pos = next
	return next, nil
}

// Close releases nothing: the store persists beyond any session.
func (se *Session) Close() error {
	return nil
}

// WriteTo streams from the session offset to the end of data into w,
// advancing the offset past everything w accepted. A failure of w
// partway surfaces as ErrTransfer wrapping the cause, with the count
// already transferred reported.
func (se *Session) WriteTo(ctx context.Context, w io.Writer) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := se.store.Read(ctx, buf, se.pos)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		wn, werr := w.Write(buf[:n])
		se.pos += int64(wn)
		total += int64(wn)
		if werr != nil {
			return total, fmt.Errorf("%w: %v", ErrTransfer, werr)
		}
		if wn < n {
			return total, fmt.Errorf("%w: %v", ErrTransfer, io.ErrShortWrite)
		}
	}
}

// ReadFrom streams from r into the store at the session offset until r
// is drained, looping over the block-clamped writes. Store failures
// (ErrNoMemory, ErrInterrupted) come back as themselves; a read failure
// of r surfaces as ErrTransfer wrapping the cause. Bytes stored before
// the failure stay stored.
func (se *Session) ReadFrom(ctx context.Context, r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := r.Read(buf)
		for off := 0; off < n; {
			wn, werr := se.store.Write(ctx, buf[off:n], se.pos)
			if werr != nil {
				return total, werr
			}
			se.pos += int64(wn)
			off += wn
			total += int64(wn)
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, fmt.Errorf("%w: %v", ErrTransfer, rerr)
		}
	}
}
