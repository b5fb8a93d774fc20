package render

import (
	"fmt"
	"math"

	"gademo/internal/problems"
)

// DrawLayout draws the area border and every item rectangle, scaled to fit.
// Cells covered by more than one item are marked as overlap.
func DrawLayout(c Canvas, l *problems.Layout, layout []problems.Point) {
	if c.W < 3 || c.H < 3 {
		return
	}
	inner := c.Sub(1, 1, c.W-2, c.H-2)
	drawBorder(c)

	sx := float64(inner.W) / l.AreaWidth
	sy := float64(inner.H) / l.AreaHeight

	cover := make([]int, inner.W*inner.H)
	for _, p := range layout {
		x0, x1 := span(p.X, l.ItemWidth, sx, inner.W)
		// Area y grows upwards, terminal rows grow downwards
		y0, y1 := span(l.AreaHeight-p.Y-l.ItemHeight, l.ItemHeight, sy, inner.H)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				cover[y*inner.W+x]++
			}
		}
	}

	for y := 0; y < inner.H; y++ {
		for x := 0; x < inner.W; x++ {
			switch n := cover[y*inner.W+x]; {
			case n == 1:
				inner.Set(x, y, '█', styleItem)
			case n > 1:
				inner.Set(x, y, '▓', styleOverlap)
			}
		}
	}
}

// span maps [pos, pos+size) to cell indices [lo, hi) with at least one cell.
func span(pos, size, scale float64, limit int) (int, int) {
	lo := int(math.Floor(pos * scale))
	hi := int(math.Ceil((pos + size) * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return clamp(lo, 0, limit), clamp(hi, 0, limit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func drawBorder(c Canvas) {
	for x := 1; x < c.W-1; x++ {
		c.Set(x, 0, '─', styleDim)
		c.Set(x, c.H-1, '─', styleDim)
	}
	for y := 1; y < c.H-1; y++ {
		c.Set(0, y, '│', styleDim)
		c.Set(c.W-1, y, '│', styleDim)
	}
	c.Set(0, 0, '┌', styleDim)
	c.Set(c.W-1, 0, '┐', styleDim)
	c.Set(0, c.H-1, '└', styleDim)
	c.Set(c.W-1, c.H-1, '┘', styleDim)
}

// DrawAssignment draws the cost table, one row per resource, with the
// resource chosen for each task highlighted.
func DrawAssignment(c Canvas, a *problems.Assignment, assignment []int) {
	const cell = 5
	for t := 0; t < a.Tasks; t++ {
		c.Text(4+t*cell, 0, styleDim, fmt.Sprintf("T%-3d", t))
	}
	for r := 0; r < a.Resources; r++ {
		c.Text(0, r+1, styleDim, fmt.Sprintf("R%d", r))
		for t := 0; t < a.Tasks; t++ {
			style := styleDefault
			if t < len(assignment) && assignment[t] == r {
				style = styleChosen
			}
			c.Text(4+t*cell, r+1, style, fmt.Sprintf("%3d", a.Costs[r][t]))
		}
	}
}

// DrawSubset lists every item with its weights, marking the included ones.
func DrawSubset(c Canvas, s *problems.Subset, bits []uint8) {
	for i := range s.Efficacy {
		mark, style := "[ ]", styleDefault
		if i < len(bits) && bits[i] == 1 {
			mark, style = "[x]", styleChosen
		}
		c.Text(0, i, style, mark)
		c.Text(4, i, styleDefault, fmt.Sprintf("E:%.2f T:%.2f B:%.2f", s.Efficacy[i], s.Toxicity[i], s.Bioavailability[i]))
	}
}

// DrawSequence shows the best code string above a plot of the best-score history.
func DrawSequence(c Canvas, best []byte, history []float64) {
	c.Text(0, 0, styleHeader, string(best))
	DrawPlot(c.Sub(0, 2, c.W, c.H-2), history)
}

// DrawPlot plots data left to right, scaled to the canvas.
func DrawPlot(c Canvas, data []float64) {
	if len(data) == 0 || c.W == 0 || c.H == 0 {
		return
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	row := func(v float64) int {
		if hi == lo {
			return c.H / 2
		}
		return c.H - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.H-1)))
	}

	if len(data) == 1 {
		c.Set(0, row(data[0]), '•', stylePlot)
		return
	}
	cols := min(c.W, len(data))
	for x := 0; x < cols; x++ {
		i := x * (len(data) - 1) / max(cols-1, 1)
		c.Set(x, row(data[i]), '•', stylePlot)
	}
}
