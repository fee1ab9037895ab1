package main

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/pprofserver"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	// defaultTimeout bounds reading and writing a request. Data refreshes wait at most refreshWait of it.
	defaultTimeout = 10 * time.Second
	refreshWait    = defaultTimeout - 2*time.Second
)

// configureAndStartServer serves until ctx is done or the process receives SIGINT or SIGTERM.
func (app *application) configureAndStartServer(ctx context.Context, addr string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           app.routes(),
		IdleTimeout:       time.Minute,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "TCP listen", slog.String("listen_addr", addr))
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server",
		slog.String("addr", listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown server")
		}
		return nil
	})
	if app.cfg.PprofAddr != "" {
		g.Go(func() error {
			return pprofserver.ListenAndServe(gctx, app.cfg.PprofAddr, app.logger)
		})
	}

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "serve")
	}
	return nil
}
