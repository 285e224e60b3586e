package e2etest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/myrjola/spoonmap/internal/errors"
	"github.com/myrjola/spoonmap/internal/logging"
)

// LogAddrKey is the log attribute carrying the listener address. A server started with localhost:0 reports its
// port through it.
const LogAddrKey = "addr"

// RunFunc has the signature of the web server's run function.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// Server is a web server running in the test process.
type Server struct {
	client *Client
	cancel context.CancelCauseFunc
	done   chan error
}

var errStopped = errors.NewSentinel("test server stopped")

// StartServer runs the server in a goroutine and returns once /api/healthy answers. Logs go to logSink, usually
// [io.Discard]. Stop the server with [Server.Stop].
func StartServer(ctx context.Context, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (
	*Server, error,
) {
	ctx, cancel := context.WithCancelCause(ctx)

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

	done := make(chan error, 1)
	go func() {
		err := run(ctx, logger, lookupEnv)
		if err != nil {
			cancel(err)
		}
		done <- err
	}()

	var addr string
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server exited before listening")
	case addr = <-addrCh:
	}

	client, err := NewClient(fmt.Sprintf("http://%s", addr))
	if err != nil {
		cancel(err)
		return nil, errors.Wrap(err, "new client")
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		cancel(err)
		return nil, errors.Wrap(err, "wait for ready", slog.String("addr", addr))
	}
	return &Server{client: client, cancel: cancel, done: done}, nil
}

// Client returns the client bound to the server. Its cookie jar is shared by all callers.
func (s *Server) Client() *Client {
	return s.client
}

// Stop shuts the server down and returns the error run returned, if any.
func (s *Server) Stop() error {
	s.cancel(errStopped)
	return errors.Wrap(<-s.done, "run")
}
