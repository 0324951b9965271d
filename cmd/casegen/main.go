// casegen writes a random, reproducible input for the fenwick or yatp
// programs to stdout.
//
//	casegen -kind fenwick -size 1000000 -ops 5000000 -seed 7 > big.in
//	casegen -kind yatp -size 200000 -shape line | yatp -v
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"arena.lopezb.com/internal/workload"
	"arena.lopezb.com/internal/yatp"
)

type config struct {
	Kind       string `validate:"oneof=fenwick yatp"`
	Seed       int64
	Size       int   `validate:"min=0"`
	Ops        int   `validate:"min=-1"`
	Shape      string
	MaxPenalty int64 `validate:"min=0"`
	MaxWeight  int64 `validate:"min=1,max=1000000000"`
	Verbose    bool
}

type application struct {
	config config
	logger *slog.Logger
}

func main() {
	var cfg config

	flag.StringVar(&cfg.Kind, "kind", "fenwick", "Input kind: fenwick or yatp")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Generator seed")
	flag.IntVar(&cfg.Size, "size", 1000, "Array length (fenwick) or node count (yatp)")
	flag.IntVar(&cfg.Ops, "ops", -1, "Operation count for fenwick (-1 for -size)")
	flag.StringVar(&cfg.Shape, "shape", string(workload.ShapeRandom), "Tree shape for yatp: random, line or star")
	flag.Int64Var(&cfg.MaxPenalty, "max-penalty", workload.MaxPenalty, "Largest node penalty for yatp")
	flag.Int64Var(&cfg.MaxWeight, "max-weight", yatp.MaxWeight, "Largest edge weight for yatp")
	flag.BoolVar(&cfg.Verbose, "v", false, "Log a summary of the generated case")
	flag.Parse()

	opts := &slog.HandlerOptions{}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
	app := &application{config: cfg, logger: logger}

	w := bufio.NewWriter(os.Stdout)
	if err := app.run(w); err != nil {
		logger.Error("casegen failed", "error", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		logger.Error("casegen failed", "error", err)
		os.Exit(1)
	}
}

func (app *application) run(w io.Writer) error {
	cfg := app.config
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	switch cfg.Kind {
	case "fenwick":
		ops := cfg.Ops
		if ops < 0 {
			ops = cfg.Size
		}
		if err := workload.Fenwick(w, cfg.Seed, cfg.Size, ops); err != nil {
			return err
		}
		app.logger.Debug("case written", "kind", cfg.Kind, "seed", cfg.Seed, "size", cfg.Size, "ops", ops)
		return nil

	default:
		shape, err := workload.ParseShape(cfg.Shape)
		if err != nil {
			return err
		}
		c, err := workload.Tree(cfg.Seed, cfg.Size, shape, cfg.MaxPenalty, cfg.MaxWeight)
		if err != nil {
			return err
		}
		n, err := c.WriteTo(w)
		if err != nil {
			return err
		}
		app.logger.Debug("case written", "kind", cfg.Kind, "seed", cfg.Seed, "size", cfg.Size, "shape", shape, "bytes", n)
		return nil
	}
}
