// princess plays the Princess and the Pea search against a judge.
//
// By default it talks to the judge over stdin and stdout. With -connect it
// dials a princess-judge server instead. With -simulate it plays the
// scenario given by -m, -n and -s in process, once for every pea position
// and once against the adaptive adversary, and prints a summary.
//
// Usage Examples
// ==============
//
//	princess < judge.fifo > solver.fifo
//	princess -connect localhost:7171
//	princess -simulate -m 1000 -n 72 -s 31
//
// Exit code 1 means a protocol failure, a wrong answer or a blown budget.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"arena.lopezb.com/internal/princess"
)

const defaultDialTimeout = 5 * time.Second

type config struct {
	connect     string
	dialTimeout time.Duration
	simulate    bool
	scenario    princess.Scenario
	workers     int
	verbose     bool
}

type application struct {
	config config
	logger *slog.Logger
}

func main() {
	var cfg config

	flag.StringVar(&cfg.connect, "connect", "", "Judge address (host:port); empty for stdin/stdout")
	flag.DurationVar(&cfg.dialTimeout, "dial-timeout", defaultDialTimeout, "Timeout for -connect")
	flag.BoolVar(&cfg.simulate, "simulate", false, "Play every pea position of -m/-n/-s in process")
	flag.Int64Var(&cfg.scenario.Mattresses, "m", 1000, "Mattresses for -simulate")
	flag.Int64Var(&cfg.scenario.Nights, "n", 72, "Nights for -simulate")
	flag.Int64Var(&cfg.scenario.Penalty, "s", 31, "Penalty for -simulate")
	flag.IntVar(&cfg.workers, "workers", runtime.GOMAXPROCS(0), "Concurrent games for -simulate")
	flag.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &application{config: cfg, logger: logger}

	var err error
	switch {
	case cfg.simulate:
		err = app.simulate(context.Background(), os.Stdout)
	case cfg.connect != "":
		err = app.dial()
	default:
		err = app.play(os.Stdin, os.Stdout)
	}
	if err != nil {
		logger.Error("princess failed", "error", err)
		os.Exit(1)
	}
}

func (app *application) play(r io.Reader, w io.Writer) error {
	res, err := princess.Solve(r, w)
	if err != nil {
		return err
	}
	app.logger.Debug("game over", "scenario", res.Scenario.String(), "answer", res.Answer, "queries", res.Queries, "nights", res.Nights)
	return nil
}

func (app *application) dial() error {
	conn, err := net.DialTimeout("tcp", app.config.connect, app.config.dialTimeout)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	app.logger.Debug("connected", "address", conn.RemoteAddr().String())
	return app.play(conn, conn)
}

// summary aggregates a simulation run.
type summary struct {
	games    int64
	failures int64
	worst    int64
	queries  int64
}

func (app *application) simulate(ctx context.Context, w io.Writer) error {
	sc := app.config.scenario
	if err := sc.Validate(); err != nil {
		return err
	}

	var (
		mu  sync.Mutex
		sum summary
	)
	record := func(name string, v princess.Verdict, err error) {
		mu.Lock()
		defer mu.Unlock()
		sum.games++
		sum.worst = max(sum.worst, v.Nights)
		sum.queries = max(sum.queries, v.Queries)
		if err != nil {
			sum.failures++
			app.logger.Error("game lost", "oracle", name, "error", err, "nights", v.Nights)
		}
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, app.config.workers))

	for pea := int64(0); pea < sc.Mattresses; pea++ {
		g.Go(func() error {
			_, v, err := princess.Play(ctx, sc, princess.FixedOracle(pea))
			record(fmt.Sprintf("pea=%d", pea), v, err)
			return ctx.Err()
		})
	}
	g.Go(func() error {
		_, v, err := princess.Play(ctx, sc, princess.NewAdversary(sc))
		record("adversary", v, err)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	app.logger.Debug("simulation done", "duration", time.Since(start))
	fmt.Fprintf(w, "%s feasible=%t games=%d failures=%d worst_nights=%d max_queries=%d\n",
		sc, sc.Feasible(), sum.games, sum.failures, sum.worst, sum.queries)

	if sum.failures > 0 {
		return fmt.Errorf("%d of %d games lost", sum.failures, sum.games)
	}
	return nil
}
