// Word scanner tests.
//
// The deterministic wake logic is tested by calling scanWord directly;
// the timer loop, cancellation, and drain behaviour are tested through
// Start/Stop with a short interval and a capturing sink. TestMain runs
// goleak so a scanner whose Stop failed to join its goroutine fails the
// whole package.
package quanta

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak from any test in the package —
// in particular that every started scanner was drained.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureHandler is a slog.Handler that records message strings. The
// scanner emits one record per word with the word as the message, so
// the captured slice is the emitted word sequence.
type captureHandler struct {
	mu    sync.Mutex
	words []string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.words = append(h.words, r.Message)
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.words))
	copy(out, h.words)
	return out
}

// TestScanPlaceholder verifies that an empty store reports the single
// space placeholder on every wake without moving the cursor. The
// placeholder is the heartbeat that shows the scanner alive when there
// is nothing to say.
func TestScanPlaceholder(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		word, ok := s.scanWord(ctx)
		if !ok {
			t.Fatalf("wake %d skipped", i)
		}
		if word != " " {
			t.Errorf("wake %d = %q, want %q", i, word, " ")
		}
	}
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after placeholder wakes", s.cursor)
	}
}

// TestScanHelloWorld is the canonical scenario: "hello world\n" scans
// as "hello " (delimiter consumed), then "world " (word ends at the
// window, trailing space still appended), then wraps and repeats. The
// third wake proves the wraparound path, since after "world" the cursor
// sits one byte short of the end.
func TestScanHelloWorld(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	fill(t, s, []byte("hello world\n"), 0)

	want := []string{"hello ", "world ", "hello "}
	for i, w := range want {
		word, ok := s.scanWord(ctx)
		if !ok {
			t.Fatalf("wake %d skipped", i)
		}
		if word != w {
			t.Errorf("wake %d = %q, want %q", i, word, w)
		}
	}
}

// TestScanWraparound verifies that a cursor with fewer than 2 unread
// bytes before the end resets to 0 before scanning. With size 10 and
// cursor 9 only one byte remains — not enough for a word plus its
// terminator — so the wake must restart from the front rather than
// report a fragment.
func TestScanWraparound(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	fill(t, s, []byte("abcde fghi"), 0)
	s.cursor = 9

	word, ok := s.scanWord(ctx)
	if !ok {
		t.Fatalf("wake skipped")
	}
	if word != "abcde " {
		t.Errorf("wake = %q, want %q (scan restarted at 0)", word, "abcde ")
	}
}

// TestScanHole verifies that a wake whose cursor sits on an unallocated
// block reports nothing and reschedules: the cursor must not advance
// through data that does not exist. Writing only past the first block
// leaves block 0 a hole while the size covers it.
func TestScanHole(t *testing.T) {
	s := newTestStore(t, Config{BlockSize: 16, SegmentBlocks: 4})
	ctx := context.Background()

	fill(t, s, []byte("later"), 16) // block 1; block 0 stays a hole

	word, ok := s.scanWord(ctx)
	if ok {
		t.Fatalf("wake over hole emitted %q, want skip", word)
	}
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (unmoved by skipped wake)", s.cursor)
	}
}

// TestScanFilterNonPrintable verifies the printable filter is a
// conjunction: bytes outside [0x20, 0x7E] are consumed but not
// reported. The disjunctive form would accept every byte value,
// embedding raw control bytes in log lines.
func TestScanFilterNonPrintable(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	fill(t, s, []byte("a\x01b\x7fc d"), 0)

	word, ok := s.scanWord(ctx)
	if !ok {
		t.Fatalf("wake skipped")
	}
	if word != "abc " {
		t.Errorf("wake = %q, want %q (control bytes dropped)", word, "abc ")
	}
}

// TestScanWordBudget verifies that at most MaxWordLen-1 bytes are
// examined per wake, the last slot being reserved for the terminator. A
// 9-byte run with MaxWordLen 5 comes out in chunks of 4.
func TestScanWordBudget(t *testing.T) {
	s := newTestStore(t, Config{MaxWordLen: 5})
	ctx := context.Background()

	fill(t, s, []byte("abcdefgh\n"), 0)

	word, ok := s.scanWord(ctx)
	if !ok {
		t.Fatalf("wake skipped")
	}
	if word != "abcd " {
		t.Errorf("wake = %q, want %q", word, "abcd ")
	}
	if s.cursor != 4 {
		t.Errorf("cursor = %d, want 4", s.cursor)
	}
}

// TestScanInterrupted verifies that a cancelled context skips the wake
// without touching the cursor, mirroring the treatment of holes: the
// periodic task never dies from a failed wake.
func TestScanInterrupted(t *testing.T) {
	s := newTestStore(t, Config{})

	fill(t, s, []byte("hello world\n"), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if word, ok := s.scanWord(ctx); ok {
		t.Fatalf("interrupted wake emitted %q, want skip", word)
	}
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}

// TestScannerEmitsPeriodically runs the real loop against a short
// interval and checks the emitted sequence. Timing is handled by
// polling with a deadline rather than a fixed sleep, so the test stays
// stable on a loaded machine.
func TestScannerEmitsPeriodically(t *testing.T) {
	s := newTestStore(t, Config{Interval: 5 * time.Millisecond})

	fill(t, s, []byte("hello world\n"), 0)

	h := &captureHandler{}
	sc := NewScanner(s, slog.New(h))
	sc.Start()
	defer sc.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for len(h.snapshot()) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("scanner emitted %d words before deadline, want 3", len(h.snapshot()))
		}
		time.Sleep(time.Millisecond)
	}

	words := h.snapshot()[:3]
	want := []string{"hello ", "world ", "hello "}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %q, want %q", i, words[i], want[i])
		}
	}
}

// TestScannerStopDrains verifies that Stop joins the loop: after Stop
// returns, no further words appear even across several intervals, and
// closing the store is safe. goleak in TestMain backs this up at the
// package level.
func TestScannerStopDrains(t *testing.T) {
	s := newTestStore(t, Config{Interval: time.Millisecond})

	fill(t, s, []byte("hello world\n"), 0)

	h := &captureHandler{}
	sc := NewScanner(s, slog.New(h))
	sc.Start()
	time.Sleep(10 * time.Millisecond)
	sc.Stop()

	before := len(h.snapshot())
	time.Sleep(10 * time.Millisecond)
	after := len(h.snapshot())
	if after != before {
		t.Errorf("words emitted after Stop: %d -> %d", before, after)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close after Stop: %v", err)
	}
}

// TestScannerStopIdempotent verifies that Stop without Start, and a
// second Stop, are no-ops. Shutdown paths call Stop unconditionally.
func TestScannerStopIdempotent(t *testing.T) {
	s := newTestStore(t, Config{Interval: time.Millisecond})

	sc := NewScanner(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sc.Stop()
	sc.Start()
	sc.Stop()
	sc.Stop()
}

// TestScanTrimResetsCursor verifies that the cursor is part of the
// state a trim clears: after scanning into the content and trimming,
// the next wake reports the placeholder from a zero cursor.
func TestScanTrimResetsCursor(t *testing.T) {
	s := newTestStore(t, Config{})
	ctx := context.Background()

	fill(t, s, []byte("hello world\n"), 0)
	if _, ok := s.scanWord(ctx); !ok {
		t.Fatalf("wake skipped")
	}
	if s.cursor == 0 {
		t.Fatalf("cursor did not advance")
	}

	if err := s.Trim(ctx); err != nil {
		t.Fatalf("Trim: %v", err)
	}
	word, ok := s.scanWord(ctx)
	if !ok || word != " " {
		t.Errorf("wake after trim = %q/%v, want placeholder", word, ok)
	}
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
}
