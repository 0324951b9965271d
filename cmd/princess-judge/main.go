// princess-judge serves Princess and the Pea games over TCP. Every
// connection plays one game: the judge sends "M N S", answers each
// "? i…" line with "0" or "1" and closes after the solver's "! x".
//
// Pea Placement
// =============
//
// The -mode flag decides where the pea is:
//
//   - fixed:     always under mattress -pea.
//   - seeded:    xxhash64 of -seed and the session id, modulo M. Each
//     connection gets a different but reproducible position; the session
//     id is logged with every line of the game.
//   - adversary: nowhere in particular. The judge answers so as to keep
//     the solver's remaining game as expensive as possible and accepts the
//     final answer only if it is the last consistent mattress.
//
// Metrics
// =======
//
// With -metrics-addr set, the game counters are served in the Prometheus
// text format at /metrics on that address.
//
// Graceful Shutdown
// =================
//
// SIGINT or SIGTERM closes the listener and waits up to -shutdown-timeout
// for games in progress. The counters are logged on the way out.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"arena.lopezb.com/internal/princess"
)

const (
	modeFixed     = "fixed"
	modeSeeded    = "seeded"
	modeAdversary = "adversary"
)

type config struct {
	port            int
	maxConnections  int
	shutdownTimeout time.Duration
	idleTimeout     time.Duration
	scenario        princess.Scenario
	mode            string
	pea             int64
	seed            int64
	metricsAddr     string
}

type application struct {
	config      config
	logger      *slog.Logger
	listener    net.Listener
	metrics     *Metrics
	readyCh     chan struct{}
	wg          sync.WaitGroup
	connLimiter chan struct{}
}

func main() {
	var cfg config

	flag.IntVar(&cfg.port, "port", 7171, "TCP server port")
	flag.IntVar(&cfg.maxConnections, "max-conn", 100, "Maximum concurrent games")
	flag.DurationVar(&cfg.shutdownTimeout, "shutdown-timeout", 5*time.Second, "Graceful shutdown timeout")
	flag.DurationVar(&cfg.idleTimeout, "idle-timeout", 30*time.Second, "Idle solver timeout (0 for no timeout)")
	flag.Int64Var(&cfg.scenario.Mattresses, "m", 1000, "Mattresses")
	flag.Int64Var(&cfg.scenario.Nights, "n", 72, "Nights")
	flag.Int64Var(&cfg.scenario.Penalty, "s", 31, "Recovery nights after sleeping on the pea")
	flag.StringVar(&cfg.mode, "mode", modeSeeded, "Pea placement: fixed, seeded or adversary")
	flag.Int64Var(&cfg.pea, "pea", 0, "Pea index for -mode fixed")
	flag.Int64Var(&cfg.seed, "seed", 1, "Seed for -mode seeded")
	flag.StringVar(&cfg.metricsAddr, "metrics-addr", "", "Address for the Prometheus /metrics endpoint (empty to disable)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := cfg.validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		metrics:     NewMetrics(),
		connLimiter: make(chan struct{}, cfg.maxConnections),
	}

	defer func() {
		logger.Info("judge stopped",
			"connections", app.metrics.TotalConnections.Load(),
			"games", app.metrics.Games.Load(),
			"wins", app.metrics.Wins.Load(),
			"violations", app.metrics.Violations.Load())
	}()

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

var validate = validator.New()

func (cfg config) validate() error {
	if err := cfg.scenario.Validate(); err != nil {
		return err
	}
	type check struct {
		name  string
		value any
		tag   string
	}
	checks := []check{
		{"port", cfg.port, "min=0,max=65535"},
		{"max-conn", cfg.maxConnections, "min=1"},
		{"mode", cfg.mode, "oneof=fixed seeded adversary"},
		{"shutdown-timeout", cfg.shutdownTimeout, "min=0"},
		{"idle-timeout", cfg.idleTimeout, "min=0"},
	}
	if cfg.metricsAddr != "" {
		checks = append(checks, check{"metrics-addr", cfg.metricsAddr, "hostname_port"})
	}
	for _, c := range checks {
		if err := validate.Var(c.value, c.tag); err != nil {
			return fmt.Errorf("-%s: %w", c.name, err)
		}
	}
	if cfg.mode == modeFixed && (cfg.pea < 0 || cfg.pea >= cfg.scenario.Mattresses) {
		return fmt.Errorf("-pea %d outside [0, %d)", cfg.pea, cfg.scenario.Mattresses)
	}
	return nil
}

// newOracle picks the pea for one session.
func (app *application) newOracle(id uuid.UUID) princess.Oracle {
	sc := app.config.scenario
	switch app.config.mode {
	case modeFixed:
		return princess.FixedOracle(app.config.pea)
	case modeAdversary:
		return princess.NewAdversary(sc)
	}
	return princess.FixedOracle(seededPea(app.config.seed, id, sc.Mattresses))
}

// seededPea hashes the seed and the session id into [0, m).
func seededPea(seed int64, id uuid.UUID, m int64) int64 {
	var buf [8 + 16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	copy(buf[8:], id[:])
	return int64(xxhash.Sum64(buf[:]) % uint64(m))
}
