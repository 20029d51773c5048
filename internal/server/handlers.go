package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/san-kum/iqmath/iq"
	"github.com/san-kum/iqmath/internal/experiment"
	"github.com/san-kum/iqmath/internal/sweep"
)

type valueResponse struct {
	Theta int32 `json:"theta"`
	Value int32 `json:"value"`
}

type sinCosResponse struct {
	Theta int32 `json:"theta"`
	Sin   int32 `json:"sin"`
	Cos   int32 `json:"cos"`
}

type atan2Response struct {
	Y     int32 `json:"y"`
	X     int32 `json:"x"`
	Theta int32 `json:"theta"`
}

type sqrtResponse struct {
	N    uint32 `json:"n"`
	Root uint32 `json:"root"`
}

type sweepResponse struct {
	Kernel  string             `json:"kernel"`
	Range   sweep.Config       `json:"range"`
	Samples int                `json:"samples"`
	Metrics map[string]float64 `json:"metrics"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseInt32(s, name string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return int32(v), nil
}

func parseInt64(s, name string, def int64) (int64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func (s *Server) theta(w http.ResponseWriter, r *http.Request) (int32, bool) {
	theta, err := parseInt32(mux.Vars(r)["theta"], "theta")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return theta, true
}

func (s *Server) handleSin(w http.ResponseWriter, r *http.Request) {
	theta, ok := s.theta(w, r)
	if !ok {
		return
	}
	EvaluationsTotal.WithLabelValues("sin").Inc()
	writeJSON(w, http.StatusOK, valueResponse{Theta: theta, Value: iq.Sin(theta)})
}

func (s *Server) handleCos(w http.ResponseWriter, r *http.Request) {
	theta, ok := s.theta(w, r)
	if !ok {
		return
	}
	EvaluationsTotal.WithLabelValues("cos").Inc()
	writeJSON(w, http.StatusOK, valueResponse{Theta: theta, Value: iq.Cos(theta)})
}

func (s *Server) handleSinCos(w http.ResponseWriter, r *http.Request) {
	theta, ok := s.theta(w, r)
	if !ok {
		return
	}
	EvaluationsTotal.WithLabelValues("sincos").Inc()
	sin, cos := iq.SinCos(theta)
	writeJSON(w, http.StatusOK, sinCosResponse{Theta: theta, Sin: sin, Cos: cos})
}

func (s *Server) handleAtan2(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	y, err := parseInt32(q.Get("y"), "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	x, err := parseInt32(q.Get("x"), "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	EvaluationsTotal.WithLabelValues("atan2").Inc()
	writeJSON(w, http.StatusOK, atan2Response{Y: y, X: x, Theta: iq.Atan2(y, x)})
}

func (s *Server) handleSqrt(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["n"]
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid n %q", raw))
		return
	}
	EvaluationsTotal.WithLabelValues("sqrt").Inc()
	writeJSON(w, http.StatusOK, sqrtResponse{N: uint32(n), Root: iq.Sqrt(uint32(n))})
}

func (s *Server) handleKernels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.ListKernels())
}

// handleSweep runs a bounded sweep of a registered kernel and returns its
// metrics. Missing start/stop/step fall back to the kernel's own domain, with
// the default step coarsened to fit MaxHTTPSamples.
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["kernel"]
	kernel, err := s.Registry.GetKernel(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	dom := kernel.Domain()
	q := r.URL.Query()
	var rng sweep.Config
	if rng.Start, err = parseInt64(q.Get("start"), "start", dom.Start); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if rng.Stop, err = parseInt64(q.Get("stop"), "stop", dom.Stop); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if rng.Step, err = parseInt64(q.Get("step"), "step", dom.Step); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if q.Get("step") == "" && rng.Count() > MaxHTTPSamples {
		rng.Step = (rng.Stop-rng.Start)/(MaxHTTPSamples-1) + 1
	}
	if rng.Count() > MaxHTTPSamples {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %d > %d", sweep.ErrTooManySamples, rng.Count(), MaxHTTPSamples))
		return
	}

	exp := experiment.New(experiment.Config{Kernel: name, Range: rng, Tolerance: s.Tolerance})
	if err := exp.SetupFromRegistry(s.Registry); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	res, err := exp.Run(r.Context())
	switch {
	case errors.Is(err, sweep.ErrInvalidRange), errors.Is(err, sweep.ErrOutOfDomain):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	EvaluationsTotal.WithLabelValues(name).Add(float64(len(res.Samples)))
	writeJSON(w, http.StatusOK, sweepResponse{
		Kernel:  res.Kernel,
		Range:   res.Config,
		Samples: len(res.Samples),
		Metrics: res.Metrics,
	})
}
