package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "iqmath", Name: "evaluations_total", Help: "Kernel evaluations served"},
		[]string{"kernel"},
	)
	OscillatorStreams = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "iqmath", Name: "oscillator_streams", Help: "Open oscillator websocket streams"})
	OscillatorFrames  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "iqmath", Name: "oscillator_frames_total", Help: "Oscillator frames sent"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "iqmath", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "iqmath",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
