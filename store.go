// Core store type and lifecycle operations.
//
// Store owns the segment list, the logical size, and the scanner cursor.
// It tracks two copies of the configuration: config is the live geometry
// used by every read and write, defaults is what Reconfigure latches and
// what trim restores. The two only diverge between a Reconfigure and the
// next trim.
package quanta

import "context"

// Store is a segmented in-memory byte store.
type Store struct {
	mu       *lock
	config   Config // live parameters
	defaults Config // restored by trim
	segments []*segment
	size     int64 // logical size: highest offset written + 1
	cursor   int64 // scanner position, zeroed by trim
	charged  int64 // bytes charged against config.MaxBytes
	closed   bool
}

// New creates an empty store. Zero Config fields take the package
// defaults. The store holds no memory beyond bookkeeping until the first
// write.
func New(config Config) *Store {
	config = normalize(config)
	return &Store{
		mu:       newLock(),
		config:   config,
		defaults: config,
	}
}

// Close empties the store and rejects all further operations with
// ErrClosed. Any scanner attached to the store must be stopped first, so
// that no wake is in flight when the contents are released.
func (s *Store) Close() error {
	s.mu.acquire(context.Background())
	defer s.mu.release()
	if s.closed {
		return ErrClosed
	}
	s.trim()
	s.closed = true
	return nil
}

// Size returns the logical size: the highest offset ever written plus
// one, or zero after a trim.
func (s *Store) Size(ctx context.Context) (int64, error) {
	if err := s.mu.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.mu.release()
	if s.closed {
		return 0, ErrClosed
	}
	return s.size, nil
}

// Trim empties the store: every segment and block is released, the
// logical size and scanner cursor drop to zero, and the live geometry is
// restored from the configured defaults.
func (s *Store) Trim(ctx context.Context) error {
	if err := s.mu.acquire(ctx); err != nil {
		return err
	}
	defer s.mu.release()
	if s.closed {
		return ErrClosed
	}
	s.trim()
	return nil
}

// trim does the work of Trim. Lock must be held. Dropping the segment
// slice releases every block to the collector in one step.
func (s *Store) trim() {
	s.segments = nil
	s.size = 0
	s.cursor = 0
	s.charged = 0
	s.config = s.defaults
}

// Reconfigure latches new parameters. They do not disturb the live
// geometry: the next trim (including the one performed by a write-only
// Open) restores them as the defaults.
func (s *Store) Reconfigure(ctx context.Context, config Config) error {
	if err := s.mu.acquire(ctx); err != nil {
		return err
	}
	defer s.mu.release()
	if s.closed {
		return ErrClosed
	}
	s.defaults = normalize(config)
	return nil
}

// Stats is a point-in-time snapshot of store occupancy.
type Stats struct {
	LogicalSize   int64 `json:"logical_size"`
	Segments      int   `json:"segments"`
	Blocks        int   `json:"blocks"`
	Charged       int64 `json:"charged_bytes"`
	Cursor        int64 `json:"cursor"`
	BlockSize     int   `json:"block_size"`
	SegmentBlocks int   `json:"segment_blocks"`
}

// Stats reports the current occupancy and live geometry.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	if err := s.mu.acquire(ctx); err != nil {
		return Stats{}, err
	}
	defer s.mu.release()
	if s.closed {
		return Stats{}, ErrClosed
	}

	blocks := 0
	for _, node := range s.segments {
		for _, b := range node.blocks {
			if b != nil {
				blocks++
			}
		}
	}
	return Stats{
		LogicalSize:   s.size,
		Segments:      len(s.segments),
		Blocks:        blocks,
		Charged:       s.charged,
		Cursor:        s.cursor,
		BlockSize:     s.config.BlockSize,
		SegmentBlocks: s.config.SegmentBlocks,
	}, nil
}
