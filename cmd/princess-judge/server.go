package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arena.lopezb.com/internal/princess"
)

const (
	rejectionTimeout          = 500 * time.Millisecond
	errMaxConnectionsResponse = "ERR max number of games reached\n"
)

// serve starts the TCP server and blocks until shutdown.
func (app *application) serve() error {
	//
	// DESIGN
	// ------
	//
	// 1. CONNECTION LIMITING
	//    A buffered channel (`connLimiter`) caps concurrent games. A
	//    non-blocking send is a try-acquire: when the buffer is full the
	//    connection is rejected with a one-line error instead of queueing.
	//
	// 2. GRACEFUL SHUTDOWN
	//    A goroutine waits for SIGINT/SIGTERM, closes the listener so Accept
	//    returns, then waits for running games (tracked by a WaitGroup) until
	//    the shutdown timeout expires.
	//
	addr := fmt.Sprintf(":%d", app.config.port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	app.listener = ln

	serverAddr := ln.Addr().String()

	var metricsSrv *http.Server
	if app.config.metricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              app.config.metricsAddr,
			Handler:           app.metricsHandler(),
			ReadHeaderTimeout: rejectionTimeout,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				app.logger.Error("metrics endpoint failed", "error", err, "address", app.config.metricsAddr)
			}
		}()
	}

	if app.readyCh != nil {
		close(app.readyCh)
	}

	shutdownError := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("caught signal", "signal", s.String(), "address", serverAddr)

		ctx, cancel := context.WithTimeout(context.Background(), app.config.shutdownTimeout)
		defer cancel()

		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(ctx)
		}

		if err := ln.Close(); err != nil {
			shutdownError <- err
			return
		}

		wgDone := make(chan struct{})
		go func() {
			app.wg.Wait()
			close(wgDone)
		}()

		select {
		case <-wgDone:
			shutdownError <- nil
		case <-ctx.Done():
			shutdownError <- ctx.Err()
		}
	}()

	app.logger.Info("judge starting", "address", serverAddr, "scenario", app.config.scenario.String(), "mode", app.config.mode)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			app.logger.Error("failed to accept connection", "error", err, "address", serverAddr)
			continue
		}

		select {
		case app.connLimiter <- struct{}{}:
			app.wg.Add(1)
			go app.handleConnection(conn)
		default:
			app.logger.Info("rejecting connection, limit reached", "remote_addr", conn.RemoteAddr().String())

			// A client that never reads must not stall the accept loop.
			_ = conn.SetWriteDeadline(time.Now().Add(rejectionTimeout))
			_, _ = io.WriteString(conn, errMaxConnectionsResponse)
			_ = conn.Close()
		}
	}

	err = <-shutdownError
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		app.logger.Error("server stopped with error", "error", err, "address", serverAddr)
		return err
	}

	app.logger.Info("server stopped gracefully", "address", serverAddr)
	return nil
}

// metricsHandler serves the game counters in the Prometheus text format.
func (app *application) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(app.metrics.Registry(), promhttp.HandlerOpts{}))
	return mux
}

// handleConnection plays one game on conn.
func (app *application) handleConnection(conn net.Conn) {
	defer func() { <-app.connLimiter }()
	defer app.wg.Done()
	defer func() { _ = conn.Close() }()

	app.metrics.TotalConnections.Add(1)

	id := uuid.New()
	logger := app.logger.With("session", id.String(), "remote_addr", conn.RemoteAddr().String())
	logger.Info("new game")

	var r io.Reader = conn
	if app.config.idleTimeout > 0 {
		r = &idleReader{conn: conn, timeout: app.config.idleTimeout}
	}

	app.metrics.Games.Add(1)
	start := time.Now()
	v, err := princess.NewSession(app.config.scenario, app.newOracle(id), r, conn).Run()

	attrs := []any{"answer", v.Answer, "queries", v.Queries, "hits", v.Hits, "nights", v.Nights, "duration", time.Since(start)}
	switch {
	case err == nil:
		app.metrics.Wins.Add(1)
		logger.Info("game won", attrs...)
	case errors.Is(err, princess.ErrWrongAnswer):
		logger.Info("game lost", append(attrs, "error", err)...)
	case errors.Is(err, princess.ErrMalformedQuery),
		errors.Is(err, princess.ErrBudgetExceeded),
		errors.Is(err, princess.ErrLineTooLong):
		app.metrics.Violations.Add(1)
		logger.Info("protocol violation", append(attrs, "error", err)...)
		_, _ = fmt.Fprintf(conn, "ERR %v\n", err)
	default:
		logger.Info("game aborted", append(attrs, "error", err)...)
	}
}

// idleReader pushes the read deadline forward before every read, so a
// solver is dropped only after going quiet for the whole timeout.
type idleReader struct {
	conn    net.Conn
	timeout time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
		return 0, err
	}
	return r.conn.Read(p)
}
