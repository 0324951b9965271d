// yatp reads a weighted tree with node penalties on stdin and prints
//
//	Σ_s min_v ( d(s,v) + p_v · p_s )
//
// on stdout. See package internal/yatp for the input format and the
// algorithm.
//
// Flags
// =====
//
//	-minima   print every node's minimum, one per line, before the sum
//	-verify   cross-check against the quadratic shortest-path oracle
//	          (skipped with a warning above yatp.BruteForceLimit nodes)
//	-v        debug logging with phase timings
//
// Exit code 1 means malformed input, arithmetic overflow or a failed
// verification.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"arena.lopezb.com/internal/fastio"
	"arena.lopezb.com/internal/yatp"
)

var errMismatch = errors.New("verification failed")

type config struct {
	minima  bool
	verify  bool
	verbose bool
}

type application struct {
	config config
	logger *slog.Logger
}

func main() {
	var cfg config

	flag.BoolVar(&cfg.minima, "minima", false, "Print per-node minima before the sum")
	flag.BoolVar(&cfg.verify, "verify", false, "Cross-check the sum with the brute-force oracle")
	flag.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &application{config: cfg, logger: logger}
	if err := app.run(os.Stdin, os.Stdout); err != nil {
		logger.Error("yatp failed", "error", err)
		os.Exit(1)
	}
}

func (app *application) run(r io.Reader, w io.Writer) error {
	start := time.Now()
	t, err := yatp.Parse(r)
	if err != nil {
		return fmt.Errorf("parsing tree: %w", err)
	}
	app.logger.Debug("parsed", "nodes", t.Len(), "duration", time.Since(start))

	start = time.Now()
	minima, err := yatp.Minima(t)
	if err != nil {
		return err
	}
	total, err := yatp.Sum(minima)
	if err != nil {
		return err
	}
	app.logger.Debug("solved", "sum", total, "duration", time.Since(start))

	if app.config.verify {
		start = time.Now()
		want, err := yatp.BruteForce(t)
		switch {
		case errors.Is(err, yatp.ErrTooLarge):
			app.logger.Warn("skipping verification", "nodes", t.Len(), "limit", yatp.BruteForceLimit)
		case err != nil:
			return fmt.Errorf("verifying: %w", err)
		case want != total:
			return fmt.Errorf("%w: centroid sum %d, brute force %d", errMismatch, total, want)
		default:
			app.logger.Debug("verified", "duration", time.Since(start))
		}
	}

	out := fastio.NewWriter(w, 0)
	if app.config.minima {
		for _, m := range minima {
			out.Line(m)
		}
	}
	out.Line(total)
	return out.Flush()
}
