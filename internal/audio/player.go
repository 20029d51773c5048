package audio

import (
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Player streams an Oscillator to the default output device.
type Player struct {
	Stream *portaudio.Stream
	Logger *slog.Logger

	mu     sync.Mutex
	osc    *Oscillator
	Active bool
}

func NewPlayer(osc *Oscillator, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{osc: osc, Logger: logger}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		p.Logger.Error("portaudio init failed", "error", err)
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, p.osc.SampleRate(), BufferSize, p.process)
	if err != nil {
		p.Logger.Error("open stream failed", "error", err)
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		p.Logger.Error("stream start failed", "error", err)
		stream.Close()
		portaudio.Terminate()
		return err
	}

	p.Logger.Info("audio started", "freq", p.osc.Frequency(), "rate", p.osc.SampleRate())
	p.Stream = stream
	p.Active = true
	return nil
}

func (p *Player) Stop() {
	if p.Stream != nil {
		p.Stream.Stop()
		p.Stream.Close()
		p.Stream = nil
	}
	portaudio.Terminate()
	p.Active = false
}

// SetFrequency retunes the oscillator while the stream is running.
func (p *Player) SetFrequency(freq float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.osc.SetFrequency(freq)
}

func (p *Player) process(out []float32) {
	p.mu.Lock()
	p.osc.Fill(out)
	p.mu.Unlock()
}
