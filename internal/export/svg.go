package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/iqmath/internal/analysis"
	"github.com/san-kum/iqmath/internal/sweep"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(points []analysis.Point) bounds {
	b := bounds{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		if p.X < b.minX {
			b.minX = p.X
		}
		if p.X > b.maxX {
			b.maxX = p.X
		}
		if p.Y < b.minY {
			b.minY = p.Y
		}
		if p.Y > b.maxY {
			b.maxY = p.Y
		}
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

func pathSVG(points []analysis.Point, width, height int, strokeColor string, zeroLine bool) string {
	if len(points) < 2 {
		return ""
	}

	b := boundsOf(points)
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if zeroLine && b.minY < 0 && b.maxY > 0 {
		y := float64(height) - (0-b.minY)/rangeY*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444444" stroke-width="1"/>
`, y, width, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - b.minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-b.minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ErrorCurveSVG plots sample error against input, with a zero line when the
// error changes sign.
func ErrorCurveSVG(samples []sweep.Sample, width, height int, strokeColor string) string {
	points := make([]analysis.Point, len(samples))
	for i, s := range samples {
		points[i] = analysis.Point{X: float64(s.Input), Y: s.Error}
	}
	return pathSVG(points, width, height, strokeColor, true)
}

// LissajousSVG draws a phasor trace as a closed path.
func LissajousSVG(trace *analysis.PhasorTrace, width, height int, strokeColor string) string {
	if trace == nil || len(trace.Points) == 0 {
		return ""
	}
	points := append(trace.Points[:len(trace.Points):len(trace.Points)], trace.Points[0])
	return pathSVG(points, width, height, strokeColor, false)
}
