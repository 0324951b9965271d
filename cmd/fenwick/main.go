// fenwick answers prefix-sum queries over a signed 64-bit array.
//
// Input (stdin) is whitespace-separated ASCII:
//
//	L K
//	+ i v      add v at index i, 0 ≤ i < L
//	? i        print the sum of indices [0, i), 0 ≤ i ≤ L
//
// with at most K operations. A clean end of input before K operations is
// accepted. Each query prints one line on stdout; logs go to stderr.
//
// Usage Examples
// ==============
//
//	casegen -kind fenwick -size 1000000 | fenwick
//	fenwick -digest < big.in > /dev/null
//
// Exit Codes
// ==========
//
// 0: every operation was processed.
// 1: malformed input. The error names the byte offset where parsing stopped.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"arena.lopezb.com/internal/fastio"
	"arena.lopezb.com/internal/fenwick"
)

var (
	errUnknownOp     = errors.New("unknown operation")
	errIndexRange    = errors.New("index out of range")
	errTruncated     = errors.New("truncated operation")
	errMissingHeader = errors.New("missing header")
)

type config struct {
	digest  bool
	verbose bool
}

type application struct {
	config config
	logger *slog.Logger
}

// stats is what a run reports once the stream is consumed.
type stats struct {
	length  int
	ops     int64
	queries int64
	digest  uint64
}

func main() {
	var cfg config

	flag.BoolVar(&cfg.digest, "digest", false, "Log an xxhash64 digest of the answers to stderr")
	flag.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &application{config: cfg, logger: logger}

	start := time.Now()
	st, err := app.run(os.Stdin, os.Stdout)
	if err != nil {
		logger.Error("fenwick failed", "error", err, "ops", st.ops)
		os.Exit(1)
	}

	logger.Debug("done", "length", st.length, "ops", st.ops, "queries", st.queries, "duration", time.Since(start))
	if cfg.digest {
		logger.Info("answer digest", "xxhash64", fmt.Sprintf("%016x", st.digest), "answers", st.queries)
	}
}

// run processes one input stream. Answers produced before an error are
// still flushed to w.
func (app *application) run(r io.Reader, w io.Writer) (st stats, err error) {
	in := fastio.NewScanner(r, 0)

	var d *xxhash.Digest
	if app.config.digest {
		d = xxhash.New()
		w = io.MultiWriter(w, d)
	}
	out := fastio.NewWriter(w, 0)
	defer func() {
		if ferr := out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("writing answers: %w", ferr)
		}
		if d != nil {
			st.digest = d.Sum64()
		}
	}()

	st.length, err = in.Int()
	if err != nil {
		return st, fmt.Errorf("reading L: %w", header(err))
	}
	limit, err := in.Int64()
	if err != nil {
		return st, fmt.Errorf("reading K: %w", header(err))
	}
	if st.length < 0 || limit < 0 {
		return st, fmt.Errorf("%w: negative header L=%d K=%d", errMissingHeader, st.length, limit)
	}
	app.logger.Debug("header", "length", st.length, "ops", limit)

	tree := fenwick.New(st.length)

	for ; st.ops < limit; st.ops++ {
		op, err := in.Byte()
		if err == io.EOF {
			app.logger.Debug("input ended early", "ops", st.ops, "declared", limit)
			return st, nil
		}
		if err != nil {
			return st, err
		}
		at := in.Offset() - 1

		switch op {
		case '+':
			i, err := in.Int()
			if err != nil {
				return st, operand(err, st.ops, in.Offset())
			}
			v, err := in.Int64()
			if err != nil {
				return st, operand(err, st.ops, in.Offset())
			}
			if i < 0 || i >= st.length {
				return st, fmt.Errorf("%w: operation %d at offset %d: + %d with L=%d", errIndexRange, st.ops+1, at, i, st.length)
			}
			tree.Add(i, v)

		case '?':
			i, err := in.Int()
			if err != nil {
				return st, operand(err, st.ops, in.Offset())
			}
			if i < 0 || i > st.length {
				return st, fmt.Errorf("%w: operation %d at offset %d: ? %d with L=%d", errIndexRange, st.ops+1, at, i, st.length)
			}
			out.Line(tree.Sum(i))
			st.queries++

		default:
			return st, fmt.Errorf("%w %q: operation %d at offset %d", errUnknownOp, op, st.ops+1, at)
		}
	}
	return st, nil
}

func header(err error) error {
	if err == io.EOF {
		return errMissingHeader
	}
	return err
}

func operand(err error, op int64, offset int64) error {
	if err == io.EOF {
		return fmt.Errorf("%w: operation %d at offset %d", errTruncated, op+1, offset)
	}
	return fmt.Errorf("operation %d: %w", op+1, err)
}
