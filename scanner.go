// Periodic word scanner.
//
// The scanner walks the stored bytes one word per wake and emits each
// word to a slog sink, one record per word. A word is a run of printable
// ASCII bytes terminated by a space or newline; the reported string is
// the run followed by a single trailing space standing in for the
// delimiter. The cursor lives on the Store so that a trim resets it
// together with the contents; the scanner owns only the timer loop.
//
// Each wake takes the store lock like any other operation. A wake that
// cannot proceed — lock acquisition interrupted, or the cursor sitting
// on a hole — is skipped, and the next one is scheduled as usual. Only Stop ends the loop, and Stop joins the goroutine so the
// store can be closed afterwards without racing an in-flight wake.
package quanta

import (
	"context"
	"log/slog"
	"time"
)

// Scanner emits one stored word per interval to a log sink.
type Scanner struct {
	store    *Store
	log      *slog.Logger
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScanner creates a scanner over store reporting to logger. The wake
// cadence is the store's configured Interval. A nil logger falls back to
// slog.Default.
func NewScanner(store *Store, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		store:    store,
		log:      logger,
		interval: store.defaults.Interval,
	}
}

// Start launches the scan loop. The first wake fires one interval after
// Start. Calling Start on a running scanner is a no-op.
func (sc *Scanner) Start() {
	if sc.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.cancel = cancel
	sc.done = make(chan struct{})
	go sc.run(ctx)
}

// Stop cancels the loop and waits for any in-flight wake to finish.
// After Stop returns no goroutine touches the store, so it is safe to
// close. Stopping a scanner that is not running is a no-op.
func (sc *Scanner) Stop() {
	if sc.cancel == nil {
		return
	}
	sc.cancel()
	<-sc.done
	sc.cancel = nil
}

func (sc *Scanner) run(ctx context.Context) {
	defer close(sc.done)
	timer := time.NewTimer(sc.interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if word, ok := sc.store.scanWord(ctx); ok {
			sc.log.Info(word)
		}
		timer.Reset(sc.interval)
	}
}

// scanWord performs one wake: extract the next word at the cursor and
// advance it. The boolean reports whether there is a word to emit; a
// skipped wake (interrupted, closed, or cursor on a hole) returns false.
func (s *Store) scanWord(ctx context.Context) (string, bool) {
	if err := s.mu.acquire(ctx); err != nil {
		return "", false
	}
	defer s.mu.release()
	if s.closed {
		return "", false
	}

	// Empty store: report the placeholder, leave the cursor alone.
	if s.size == 0 {
		return " ", true
	}

	// Fewer than 2 unread bytes left: restart from the front.
	if s.cursor+1 >= s.size {
		s.cursor = 0
	}

	window := int64(s.config.MaxWordLen)
	if s.cursor+window > s.size {
		window = s.size - s.cursor
	}

	seg, blk, rem := s.locate(s.cursor)
	node, err := s.follow(seg)
	if err != nil || node.blocks == nil || node.blocks[blk] == nil {
		return "", false // cursor sits on a hole, try again next wake
	}
	block := node.blocks[blk]

	// Stay within the block containing the cursor.
	if window > int64(s.config.BlockSize-rem) {
		window = int64(s.config.BlockSize - rem)
	}

	// Collect up to window-1 bytes: one slot of the word budget is
	// reserved for the trailing space. A space or newline ends the word
	// and is consumed with it. Printable bytes [0x20, 0x7E] are kept;
	// anything else is consumed without being reported, so a run of
	// binary data cannot stall the cursor.
	word := make([]byte, 0, window)
	for i := int64(0); i < window-1; i++ {
		c := block[rem+int(i)]
		s.cursor++
		if c == ' ' || c == '\n' {
			break
		}
		if c >= 0x20 && c <= 0x7e {
			word = append(word, c)
		}
	}
	return string(append(word, ' ')), true
}
