package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	PlotWidth  = 70
	PlotHeight = 12
)

// Plot draws data as an ASCII line chart. Series longer than PlotWidth are
// resampled by asciigraph.
func Plot(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption))
}

// PlotMany overlays several series of equal meaning, e.g. sin and cos.
func PlotMany(caption string, series ...[]float64) string {
	if len(series) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta))
}
