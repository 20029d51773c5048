package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/iqmath/iq"
)

const (
	canvasWidth     = 40
	canvasHeight    = 20
	historyCapacity = 120
	maxStep         = iq.Quarter
)

type TickMsg time.Time

// PhasorModel rotates a phasor through the sine table and tracks how far
// Atan2 of the table output lands from the commanded angle.
type PhasorModel struct {
	theta     int32
	step      int32
	initStep  int32
	running   bool
	circle    []iq.Phasor
	errors    []float64
	tolerance float64
}

// NewPhasorModel starts at theta 0, advancing step LSB per tick. tolerance
// is the round-trip error, in LSB, above which the readout turns red.
func NewPhasorModel(step int32, tolerance float64) PhasorModel {
	step = iq.Sat(step, maxStep, 1)

	circle := make([]iq.Phasor, 0, iq.One/64)
	for theta := int32(0); theta < iq.One; theta += 64 {
		circle = append(circle, iq.NewPhasor(theta))
	}

	return PhasorModel{
		step:      step,
		initStep:  step,
		running:   true,
		circle:    circle,
		errors:    make([]float64, 0, historyCapacity),
		tolerance: tolerance,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m PhasorModel) Init() tea.Cmd {
	return tick()
}

func (m PhasorModel) Theta() int32 { return m.theta }
func (m PhasorModel) Step() int32  { return m.step }
func (m PhasorModel) Running() bool {
	return m.running
}

// Errors returns the round-trip error history, oldest first.
func (m PhasorModel) Errors() []float64 {
	return append([]float64(nil), m.errors...)
}

func (m PhasorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.step = iq.Min(m.step*2, maxStep)
		case "-", "_":
			m.step = iq.Max(m.step/2, 1)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *PhasorModel) advance() {
	m.theta = iq.WrapTheta(m.theta + m.step)
	m.record()
}

func (m *PhasorModel) record() {
	s, c := iq.SinCos(m.theta)
	d := iq.WrapTheta(iq.Atan2(s, c) - m.theta)
	if d > iq.Half {
		d -= iq.One
	}

	// Copy on append so earlier model values keep their own history.
	errs := make([]float64, 0, historyCapacity)
	start := max(0, len(m.errors)+1-historyCapacity)
	errs = append(errs, m.errors[start:]...)
	m.errors = append(errs, float64(d))
}

func (m *PhasorModel) reset() {
	m.theta = 0
	m.step = m.initStep
	m.errors = make([]float64, 0, historyCapacity)
}

func (m PhasorModel) draw() string {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	for _, p := range m.circle {
		canvas.Set(canvas.Project(p.Cosine, p.Sine))
	}
	cx, cy := canvas.Project(0, 0)
	p := iq.NewPhasor(m.theta)
	px, py := canvas.Project(p.Cosine, p.Sine)
	canvas.DrawLine(cx, cy, px, py)
	return canvas.String()
}

func (m PhasorModel) View() string {
	p := iq.NewPhasor(m.theta)
	back := iq.Atan2(p.Sine, p.Cosine)

	var s strings.Builder
	s.WriteString(Title.Render("Q15 PHASOR") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(Metric("theta", fmt.Sprintf("%d (%.2f°)", m.theta, float64(m.theta)*360/float64(iq.One))) + "\n")
	s.WriteString(Metric("step", fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(Metric("sin", fmt.Sprintf("%d", p.Sine)) + "\n")
	s.WriteString(Metric("cos", fmt.Sprintf("%d", p.Cosine)) + "\n")
	s.WriteString(Metric("atan2", fmt.Sprintf("%d", back)) + "\n")

	if n := len(m.errors); n > 0 {
		last := m.errors[n-1]
		s.WriteString(Metric("error", fmt.Sprintf("%+.0f LSB ", last)) + Verdict(math.Abs(last), m.tolerance) + "\n")
	}
	if len(m.errors) > 1 {
		chart := asciigraph.Plot(m.errors, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("round-trip error"))
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause +/-:Speed R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(m.draw()), Panel.Render(s.String()))
}
