package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves the metrics registry over HTTP.
type MetricsServer struct {
	srv  *http.Server
	addr string
	done chan error
}

// Addr returns the address the server listens on.
func (s *MetricsServer) Addr() string { return s.addr }

// Done receives the server's final error, nil after a clean shutdown.
func (s *MetricsServer) Done() <-chan error { return s.done }

// ServeMetrics starts the /metrics endpoint on the configured address and
// stops it when ctx is done. It returns nil, nil when no address is set.
func (a *Application) ServeMetrics(ctx context.Context) (*MetricsServer, error) {
	if a.cfg.Metrics.Addr == "" {
		return nil, nil
	}

	ln, err := net.Listen("tcp", a.cfg.Metrics.Addr)
	if err != nil {
		return nil, &InitError{Component: "metrics", Err: err}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	s := &MetricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: ln.Addr().String(),
		done: make(chan error, 1),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	a.logger.Info("serving metrics", "addr", s.addr)
	return s, nil
}
