// Store and scanner configuration.
//
// A zero Config is usable: New replaces zero fields with the defaults
// below. BlockSize and SegmentBlocks fix the live block geometry until the
// next trim; Reconfigure latches replacement values that the next trim
// restores, so geometry only ever changes while the store is empty.
package quanta

import "time"

// Default configuration values, applied by New for zero Config fields.
const (
	DefaultBlockSize     = 4000             // bytes per block
	DefaultSegmentBlocks = 1000             // blocks per segment
	DefaultMaxWordLen    = 20               // scanner word budget, incl. terminator
	DefaultInterval      = 1 * time.Second  // scanner cadence
)

// Allocation charges against Config.MaxBytes. A block charges its full
// BlockSize; the bookkeeping structures charge flat approximations of
// their in-memory footprint.
const (
	nodeCost = 64 // one segment node
	slotCost = 24 // one block slot in a segment's block array
)

// Config holds store and scanner parameters.
type Config struct {
	BlockSize     int           `json:"block_size"`     // bytes per block (default 4000)
	SegmentBlocks int           `json:"segment_blocks"` // blocks per segment (default 1000)
	MaxWordLen    int           `json:"max_word_len"`   // max scanned word length, incl. terminator (default 20)
	MaxBytes      int64         `json:"max_bytes"`      // memory budget in bytes (0 = unlimited)
	Interval      time.Duration `json:"interval"`       // scanner wake cadence (default 1s)
}

// normalize returns c with zero fields replaced by defaults.
func normalize(c Config) Config {
	if c.BlockSize == 0 {
		c.BlockSize = DefaultBlockSize
	}
	if c.SegmentBlocks == 0 {
		c.SegmentBlocks = DefaultSegmentBlocks
	}
	if c.MaxWordLen == 0 {
		c.MaxWordLen = DefaultMaxWordLen
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	return c
}
