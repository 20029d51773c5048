package analysis

import (
	"strings"

	"github.com/san-kum/iqmath/iq"
)

type Point struct {
	X, Y float64
}

// PhasorTrace is the (cos, sin) locus of the table over one turn.
type PhasorTrace struct {
	Step   int32
	Points []Point
}

// TracePhasor samples SinCos every step LSB over one full turn.
func TracePhasor(step int32) *PhasorTrace {
	if step <= 0 {
		return nil
	}

	trace := &PhasorTrace{
		Step:   step,
		Points: make([]Point, 0, int(iq.One/step)+1),
	}
	for theta := int32(0); theta < iq.One; theta += step {
		s, c := iq.SinCos(theta)
		trace.Points = append(trace.Points, Point{X: float64(c), Y: float64(s)})
	}
	return trace
}

// Radii returns sqrt(sin^2 + cos^2) for each point, using iq.Magnitude.
func (p *PhasorTrace) Radii() []float64 {
	out := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		out[i] = float64(iq.Magnitude(int32(pt.X), int32(pt.Y)))
	}
	return out
}

// TraceToASCII renders the trace on a width x height character grid.
func TraceToASCII(trace *PhasorTrace, width, height int) string {
	if trace == nil || len(trace.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := trace.Points[0].X, trace.Points[0].X
	minY, maxY := trace.Points[0].Y, trace.Points[0].Y

	for _, p := range trace.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range trace.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes through the origin.
	col := int((0 - minX) / rangeX * float64(width-1))
	for row := 0; row < height; row++ {
		if col >= 0 && col < width && canvas[row][col] == ' ' {
			canvas[row][col] = '│'
		}
	}
	row := height - 1 - int((0-minY)/rangeY*float64(height-1))
	for c := 0; c < width; c++ {
		if row >= 0 && row < height && canvas[row][c] == ' ' {
			canvas[row][c] = '─'
		}
	}

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}
