// Package server exposes the Q15 kernels over HTTP and streams oscillator
// samples over websockets.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/iqmath/internal/experiment"
)

// MaxHTTPSamples bounds the sweep size accepted over HTTP.
const MaxHTTPSamples = 1 << 16

type Server struct {
	Registry *experiment.Registry
	// Tolerance is the within_tolerance bound used by sweep requests.
	Tolerance float64

	logger   *slog.Logger
	mux      *mux.Router
	upgrader websocket.Upgrader
}

func New(reg *experiment.Registry, tolerance float64, logger *slog.Logger) *Server {
	if reg == nil {
		reg = experiment.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Registry:  reg,
		Tolerance: tolerance,
		logger:    logger,
		mux:       mux.NewRouter(),
	}
	s.routes()
	s.registerMiddleware()
	return s
}

func (s *Server) routes() {
	v1 := s.mux.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sin/{theta}", s.handleSin).Methods("GET")
	v1.HandleFunc("/cos/{theta}", s.handleCos).Methods("GET")
	v1.HandleFunc("/sincos/{theta}", s.handleSinCos).Methods("GET")
	v1.HandleFunc("/atan2", s.handleAtan2).Methods("GET")
	v1.HandleFunc("/sqrt/{n}", s.handleSqrt).Methods("GET")
	v1.HandleFunc("/kernels", s.handleKernels).Methods("GET")
	v1.HandleFunc("/sweep/{kernel}", s.handleSweep).Methods("GET")

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws/oscillator", s.handleOscillator)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is canceled, then drains open
// requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
