// Positional reads.
//
// A single Read call never crosses a block boundary: the count is clamped
// to what remains of the block containing the start offset, so callers
// wanting more issue repeated calls with an advanced offset (Session.Read
// does exactly that). Holes are never filled on read — an unallocated
// block array or block yields zero bytes and no side effects beyond the
// segment-node traversal.
package quanta

import "context"

// Read copies stored bytes starting at off into p and returns the count
// copied. Reading at or past the logical size returns zero bytes, not an
// error; a range extending past it is truncated to fit. A hole reads as
// zero bytes.
func (s *Store) Read(ctx context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if err := s.mu.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.mu.release()
	if s.closed {
		return 0, ErrClosed
	}
	return s.readAt(p, off), nil
}

// readAt is Read with the lock held. A failed segment traversal is
// reported as a hole rather than an error: the read performed no copy and
// owes the caller nothing.
func (s *Store) readAt(p []byte, off int64) int {
	if off >= s.size || len(p) == 0 {
		return 0
	}
	n := len(p)
	if int64(n) > s.size-off {
		n = int(s.size - off)
	}

	seg, blk, rem := s.locate(off)
	node, err := s.follow(seg)
	if err != nil || node.blocks == nil || node.blocks[blk] == nil {
		return 0 // we do not fill holes
	}

	if n > s.config.BlockSize-rem {
		n = s.config.BlockSize - rem
	}
	copy(p, node.blocks[blk][rem:rem+n])
	return n
}
