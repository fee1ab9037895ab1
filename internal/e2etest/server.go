package e2etest

import (
	"context"
	"fmt"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/logging"
	"io"
	"log/slog"
)

type Server struct {
	url    string
	client *Client
}

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

// RunFunc starts a server and blocks until ctx is done. environ maps variable names to values.
type RunFunc func(ctx context.Context, logger *slog.Logger, environ map[string]string) error

// StartServer starts the test server, waits for it to be ready, and returns it for testing.
//
// logSink is the writer to which the server logs are written. You usually want to use [io.Discard].
// run is the function that starts the server. We expect the server to log the address it's listening on with
// the key [LogAddrKey].
func StartServer(ctx context.Context, logSink io.Writer, environ map[string]string, run RunFunc) (*Server, error) {
	ctx, cancel := context.WithCancelCause(ctx)

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == LogAddrKey {
				select {
				case addrCh <- a.Value.String():
				default:
				}
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, environ); err != nil {
			cancel(err)
		}
	}()
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server stopped before it was ready")
	case addr := <-addrCh:
		var (
			err    error
			client *Client
		)
		serverURL := fmt.Sprintf("http://%s", addr)
		if client, err = NewClient(serverURL); err != nil {
			return nil, errors.Wrap(err, "new client")
		}
		if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
			return nil, errors.Wrap(err, "wait for ready")
		}
		return &Server{
			url:    serverURL,
			client: client,
		}, nil
	}
}

func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}
