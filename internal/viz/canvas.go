package viz

import (
	"math"
	"strings"
)

// dots maps a sub-pixel within a 2x4 braille cell to its bit. Rows run top
// to bottom, columns left to right.
var dots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Width by Height grid of braille cells, addressed as
// Width*2 by Height*4 sub-pixels.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.Clear()
	return c
}

// Set turns on the sub-pixel (x, y); points off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= dots[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// DrawLine sets one sub-pixel per step along the longer axis.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	n := max(abs(x1-x0), abs(y1-y0))
	if n == 0 {
		c.Set(x0, y0)
		return
	}
	dx := float64(x1-x0) / float64(n)
	dy := float64(y1-y0) / float64(n)
	for i := 0; i <= n; i++ {
		c.Set(x0+int(math.Round(dx*float64(i))), y0+int(math.Round(dy*float64(i))))
	}
}

// Project maps a Q15 point in [-1, 1] onto sub-pixel coordinates, with the
// origin at the center and y pointing up.
func (c *Canvas) Project(x, y int32) (int, int) {
	cw, ch := c.Width*2, c.Height*4
	r := min(cw, ch)/2 - 1
	px := cw/2 + int(int64(x)*int64(r)>>15)
	py := ch/2 - int(int64(y)*int64(r)>>15)
	return px, py
}

// Lit reports whether any sub-pixel in the cell is on.
func (c *Canvas) Lit(col, row int) bool {
	return c.cells[row*c.Width+col] != blank
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
