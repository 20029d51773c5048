package server

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) registerMiddleware() {
	s.mux.Use(s.instrument)
}

// instrument tags each request with an id, recovers panics, and records the
// route, status and latency in metrics and the access log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = newID()
		}
		w.Header().Set("X-Request-ID", reqID)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "error", rec, "request_id", reqID)
				// A hijacked or already answered request cannot take a 500.
				if !ww.hijacked && !ww.wrote {
					http.Error(ww, "internal error", http.StatusInternalServerError)
				}
			}

			route := routeTemplate(r)
			status := strconv.Itoa(ww.status)
			elapsed := time.Since(start)
			HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed.Seconds())
			s.logger.Info("http_request",
				"method", r.Method,
				"route", route,
				"status", ww.status,
				"duration_ms", elapsed.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", reqID,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// responseWriter records the status and whether the connection was taken
// over by a websocket upgrade.
type responseWriter struct {
	http.ResponseWriter
	status   int
	wrote    bool
	hijacked bool
}

func (w *responseWriter) WriteHeader(code int) {
	w.status, w.wrote = code, true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("server: response does not support hijacking")
	}
	w.status, w.hijacked = http.StatusSwitchingProtocols, true
	return h.Hijack()
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

func newID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
