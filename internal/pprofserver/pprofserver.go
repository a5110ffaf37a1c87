package pprofserver

import (
	"context"
	"github.com/myrjola/detectivequest/internal/errors"
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

// Server serves the runtime profiles in the background.
type Server struct {
	server   *http.Server
	listener net.Listener
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server immediately.
func (s *Server) Close() error {
	if err := s.server.Close(); err != nil {
		return errors.Wrap(err, "close pprof server")
	}
	return nil
}

// Launch starts a pprof server on addr, e.g. "localhost:6060".
func Launch(ctx context.Context, addr string, logger *slog.Logger) (*Server, error) {
	logger = logger.With(slog.String("source", "pprofserver"))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "listen", slog.String("addr", addr))
	}
	mux := http.NewServeMux()
	Handle(mux)
	s := &Server{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second, //nolint:mnd // local debugging only
			BaseContext: func(net.Listener) context.Context {
				return context.WithoutCancel(ctx)
			},
		},
		listener: listener,
	}
	go func() {
		if serveErr := s.server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.LogAttrs(ctx, slog.LevelError, "pprof server stopped", errors.SlogError(serveErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "started pprof server", slog.String("addr", s.Addr()))
	return s, nil
}
