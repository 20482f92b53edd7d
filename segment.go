// Segment arena and address translation.
//
// The store's address space is two-level: offset → segment → block. A
// segment is a node holding an optional array of SegmentBlocks block
// slots; a block is BlockSize raw bytes. Segments exist contiguously from
// index 0 up to the highest one ever traversed, but a segment's block
// array and the blocks themselves appear only when a write touches them.
// A nil block slot is a hole.
package quanta

// segment holds one block array. blocks is nil until the first write
// into the segment allocates it — that state is distinct from an
// allocated array whose slots are all nil.
type segment struct {
	blocks [][]byte
}

// locate translates a logical offset into a segment index, a block index
// within the segment, and a byte offset within the block, using the live
// geometry.
func (s *Store) locate(off int64) (seg, blk, rem int) {
	span := int64(s.config.BlockSize) * int64(s.config.SegmentBlocks)
	seg = int(off / span)
	rest := off % span
	blk = int(rest / int64(s.config.BlockSize))
	rem = int(rest % int64(s.config.BlockSize))
	return seg, blk, rem
}

// follow returns the segment at index n, creating it and any missing
// predecessors with empty block arrays. On a failed charge the segments
// already created stay in place: creation is idempotent, so a later call
// resumes from the prefix. Lock must be held.
func (s *Store) follow(n int) (*segment, error) {
	for len(s.segments) <= n {
		if err := s.charge(nodeCost); err != nil {
			return nil, err
		}
		s.segments = append(s.segments, &segment{})
	}
	return s.segments[n], nil
}

// charge records n bytes against the memory budget, failing with
// ErrNoMemory when the budget would be exceeded. A zero budget admits
// everything. Lock must be held.
func (s *Store) charge(n int64) error {
	if s.config.MaxBytes > 0 && s.charged+n > s.config.MaxBytes {
		return ErrNoMemory
	}
	s.charged += n
	return nil
}
