// Positional writes.
//
// Writes allocate lazily: the segment node on traversal, the block array
// on the first write into a segment, the block on the first write into
// its range. Each allocation charges the memory budget and fails fast
// with ErrNoMemory, leaving everything already in place untouched — a
// later call retries only the allocation that failed. Like Read, a single
// call is clamped to the block containing the start offset.
package quanta

import "context"

// Write copies p into the store at off and returns the count written,
// which may be less than len(p) when the range crosses a block boundary.
// The logical size advances to cover the written range.
func (s *Store) Write(ctx context.Context, p []byte, off int64) (int, error) {
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
	return s.writeAt(p, off)
}

// writeAt is Write with the lock held.
func (s *Store) writeAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	seg, blk, rem := s.locate(off)
	node, err := s.follow(seg)
	if err != nil {
		return 0, err
	}
	if node.blocks == nil {
		if err := s.charge(slotCost * int64(s.config.SegmentBlocks)); err != nil {
			return 0, err
		}
		node.blocks = make([][]byte, s.config.SegmentBlocks)
	}
	if node.blocks[blk] == nil {
		if err := s.charge(int64(s.config.BlockSize)); err != nil {
			return 0, err
		}
		node.blocks[blk] = make([]byte, s.config.BlockSize)
	}

	n := len(p)
	if n > s.config.BlockSize-rem {
		n = s.config.BlockSize - rem
	}
	copy(node.blocks[blk][rem:], p[:n])

	if end := off + int64(n); end > s.size {
		s.size = end
	}
	return n, nil
}
