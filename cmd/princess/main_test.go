package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"arena.lopezb.com/internal/princess"
)

func newTestApp(cfg config) *application {
	if cfg.workers == 0 {
		cfg.workers = 4
	}
	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name    string
		sc      princess.Scenario
		want    string
		wantErr bool
	}{
		{
			name: "Two mattresses",
			sc:   princess.Scenario{Mattresses: 2, Nights: 2, Penalty: 1},
			want: "M=2 N=2 S=1 feasible=true games=3 failures=0 worst_nights=1 max_queries=1\n",
		},
		{
			name: "Thousand mattresses",
			sc:   princess.Scenario{Mattresses: 1000, Nights: 72, Penalty: 31},
		},
		{
			name:    "Adversary wins an infeasible game",
			sc:      princess.Scenario{Mattresses: 6, Nights: 3, Penalty: 1},
			wantErr: true,
		},
		{
			name:    "Invalid scenario",
			sc:      princess.Scenario{Mattresses: 0, Nights: 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := newTestApp(config{scenario: tt.sc}).simulate(context.Background(), &out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", out.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != "" && out.String() != tt.want {
				t.Errorf("summary = %q, want %q", out.String(), tt.want)
			}
			if !strings.Contains(out.String(), "failures=0") {
				t.Errorf("summary %q reports failures", out.String())
			}
		})
	}
}

func TestPlayOverStreams(t *testing.T) {
	var out bytes.Buffer
	if err := newTestApp(config{}).play(strings.NewReader("2 2 1\n0\n"), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "? 0\n! 1\n" {
		t.Errorf("solver wrote %q", out.String())
	}
}

func TestDial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ln.Close() }()

	sc := princess.Scenario{Mattresses: 1000, Nights: 72, Penalty: 31}
	verdicts := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			verdicts <- err
			return
		}
		defer func() { _ = conn.Close() }()
		_, err = princess.NewSession(sc, princess.FixedOracle(617), conn, conn).Run()
		verdicts <- err
	}()

	app := newTestApp(config{connect: ln.Addr().String(), dialTimeout: defaultDialTimeout})
	if err := app.dial(); err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := <-verdicts; err != nil {
		t.Errorf("judge verdict: %v", err)
	}
}
