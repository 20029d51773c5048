package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/iqmath/internal/audio"
)

const (
	defaultFrameSize = 256
	maxFrameSize     = 4096
	writeTimeout     = 5 * time.Second

	// minFramePeriod is the shortest interval between frames.
	minFramePeriod = time.Millisecond
)

// OscillatorFrame is one block of Q15 samples sent over the stream.
type OscillatorFrame struct {
	Seq     int     `json:"seq"`
	Theta   int32   `json:"theta"`
	Samples []int32 `json:"samples"`
}

type streamParams struct {
	freq, rate float64
	size       int
	frames     int
}

// period is the real-time duration of one frame.
func (p streamParams) period() time.Duration {
	return time.Duration(float64(p.size) / p.rate * float64(time.Second))
}

func parseStreamParams(r *http.Request) (streamParams, error) {
	q := r.URL.Query()
	p := streamParams{freq: 440, rate: audio.SampleRate, size: defaultFrameSize}

	if v := q.Get("freq"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("invalid freq %q", v)
		}
		p.freq = f
	}
	if v := q.Get("rate"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("invalid rate %q", v)
		}
		p.rate = f
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxFrameSize {
			return p, fmt.Errorf("invalid size %q", v)
		}
		p.size = n
	}
	if v := q.Get("frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("invalid frames %q", v)
		}
		p.frames = n
	}
	if math.IsNaN(p.rate) || math.IsInf(p.rate, 0) || p.rate <= 0 {
		return p, fmt.Errorf("invalid rate %g", p.rate)
	}
	if p.period() < minFramePeriod {
		return p, fmt.Errorf("frame period %v below %v: raise size or lower rate", p.period(), minFramePeriod)
	}
	return p, nil
}

// handleOscillator streams frames at the oscillator's real-time rate until
// the client disconnects or the requested frame count is sent.
func (s *Server) handleOscillator(w http.ResponseWriter, r *http.Request) {
	p, err := parseStreamParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	osc, err := audio.NewOscillator(p.freq, p.rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	OscillatorStreams.Inc()
	defer OscillatorStreams.Dec()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain client messages so close frames are processed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("oscillator stream opened", "freq", p.freq, "rate", p.rate, "size", p.size)
	if err := s.stream(ctx, conn, osc, p); err != nil {
		s.logger.Info("oscillator stream closed", "error", err)
		return
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
}

func (s *Server) stream(ctx context.Context, conn *websocket.Conn, osc *audio.Oscillator, p streamParams) error {
	ticker := time.NewTicker(p.period())
	defer ticker.Stop()

	for seq := 0; p.frames == 0 || seq < p.frames; seq++ {
		frame := OscillatorFrame{Seq: seq, Theta: osc.Theta(), Samples: make([]int32, p.size)}
		for i := range frame.Samples {
			frame.Samples[i] = osc.Next()
		}

		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
		OscillatorFrames.Inc()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
