package main

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the atomic counters for monitoring the judge.
type Metrics struct {
	TotalConnections atomic.Uint64 // Counts total connections ever accepted
	Games            atomic.Uint64 // Games that reached the header
	Wins             atomic.Uint64 // Games that ended with a correct answer
	Violations       atomic.Uint64 // Malformed lines, blown budgets, oversized lines
}

// NewMetrics creates and returns a new Metrics struct.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Registry exposes the counters as princess_judge_* counters. The
// collectors read the atomics at scrape time.
func (m *Metrics) Registry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	counter := func(name, help string, v *atomic.Uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "princess_judge",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(v.Load()) })
	}
	reg.MustRegister(
		counter("connections_total", "Connections accepted.", &m.TotalConnections),
		counter("games_total", "Games started.", &m.Games),
		counter("wins_total", "Games ended with a correct answer.", &m.Wins),
		counter("violations_total", "Games ended by a protocol violation.", &m.Violations),
	)
	return reg
}
