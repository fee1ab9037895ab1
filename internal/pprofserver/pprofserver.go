package pprofserver

import (
	"context"
	"github.com/OPSAF/Anime/internal/errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

func Handle(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
}

// ListenAndServe serves pprof on addr until ctx is done. Keep addr on a loopback interface, the profiles are not
// meant for the world.
func ListenAndServe(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	Handle(mux)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		ReadHeaderTimeout: time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "pprof listen", slog.String("addr", addr))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "starting pprof server", slog.String("pprof_addr", listener.Addr().String()))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "pprof serve")
	}
	return nil
}
