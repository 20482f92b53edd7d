// Command quanta runs a store with the word scanner attached. Stdin is
// fed into a write-only session; the scanner emits one stored word per
// interval to stderr until the process is signalled, at which point the
// scanner is drained and the store closed in order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jpl-au/quanta"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quanta:", err)
		os.Exit(1)
	}
}

func run() error {
	blockSize := flag.Int("block-size", quanta.DefaultBlockSize, "bytes per block")
	segmentBlocks := flag.Int("segment-blocks", quanta.DefaultSegmentBlocks, "blocks per segment")
	maxWordLen := flag.Int("max-word-len", quanta.DefaultMaxWordLen, "max scanned word length")
	maxBytes := flag.Int64("max-bytes", 0, "memory budget in bytes (0 = unlimited)")
	interval := flag.Duration("interval", time.Second, "scanner cadence")
	configPath := flag.String("config", "", "path to JSON config file (overrides flags)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	cfg := quanta.Config{
		BlockSize:     *blockSize,
		SegmentBlocks: *segmentBlocks,
		MaxWordLen:    *maxWordLen,
		MaxBytes:      *maxBytes,
		Interval:      *interval,
	}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", *configPath, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	store := quanta.New(cfg)
	scanner := quanta.NewScanner(store, logger)
	scanner.Start()

	// Feed stdin into the store unless we are attached to a terminal.
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		go func() {
			sess, err := store.Open(ctx, true)
			if err != nil {
				logger.Error("open session", "err", err)
				return
			}
			n, err := sess.ReadFrom(ctx, os.Stdin)
			if err != nil {
				logger.Error("store stdin", "err", err, "stored", n)
				return
			}
			logger.Info("stdin stored", "bytes", n)
		}()
	}

	<-ctx.Done()

	// Shutdown order matters: drain the scanner before the store goes away.
	scanner.Stop()
	if stats, err := store.Stats(context.Background()); err == nil {
		if out, err := json.Marshal(stats); err == nil {
			logger.Info("shutdown", "stats", string(out))
		}
	}
	return store.Close()
}
