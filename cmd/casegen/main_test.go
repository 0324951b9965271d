package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"arena.lopezb.com/internal/yatp"
)

func newTestApp(cfg config) *application {
	if cfg.Shape == "" {
		cfg.Shape = "random"
	}
	if cfg.MaxWeight == 0 {
		cfg.MaxWeight = 100
	}
	return &application{config: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestFenwickCase(t *testing.T) {
	var out bytes.Buffer
	if err := newTestApp(config{Kind: "fenwick", Seed: 3, Size: 10, Ops: -1}).run(&out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if lines[0] != "10 10" {
		t.Errorf("header = %q, want %q", lines[0], "10 10")
	}
	if len(lines) != 11 {
		t.Errorf("got %d lines, want 11", len(lines))
	}
}

func TestYatpCaseParses(t *testing.T) {
	for _, shape := range []string{"random", "line", "star"} {
		var out bytes.Buffer
		if err := newTestApp(config{Kind: "yatp", Seed: 9, Size: 50, Shape: shape, MaxPenalty: 20}).run(&out); err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		tree, err := yatp.Parse(&out)
		if err != nil {
			t.Fatalf("%s: generated case does not parse: %v", shape, err)
		}
		if tree.Len() != 50 {
			t.Errorf("%s: %d nodes, want 50", shape, tree.Len())
		}
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		cfg  config
	}{
		{"Unknown kind", config{Kind: "princess", Size: 3}},
		{"Negative size", config{Kind: "fenwick", Size: -1}},
		{"Unknown shape", config{Kind: "yatp", Size: 3, Shape: "ring"}},
		{"Empty tree", config{Kind: "yatp", Size: 0}},
		{"Weight too large", config{Kind: "yatp", Size: 3, MaxWeight: yatp.MaxWeight + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := newTestApp(tt.cfg).run(io.Discard); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
