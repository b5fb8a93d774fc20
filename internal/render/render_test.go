package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gademo/internal/problems"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// screenLines returns the visible text of the simulation screen, one string per row.
func screenLines(screen tcell.SimulationScreen) []string {
	cells, w, h := screen.GetContents()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(runes[0])
		}
		lines[y] = sb.String()
	}
	return lines
}

func TestFrameDrawsStatusAndBody(t *testing.T) {
	screen := newSimScreen(t, 60, 12)
	d := NewDisplay(screen, "subset", 0)

	s, err := problems.NewSubset([]float64{0.9, 0.1}, []float64{0.1, 0.8}, []float64{1, 1})
	require.NoError(t, err)

	ok := d.Frame(Status(3, 2.15, 1.2), func(c Canvas) { DrawSubset(c, s, []uint8{1, 0}) })
	assert.True(t, ok)

	lines := screenLines(screen)
	assert.Contains(t, lines[0], "subset")
	assert.Contains(t, lines[0], "gen 3")
	assert.Contains(t, lines[2], "[x] E:0.90 T:0.10 B:1.00")
	assert.Contains(t, lines[3], "[ ] E:0.10 T:0.80 B:1.00")
	assert.Contains(t, lines[11], "quit")
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		quit bool
	}{
		{"q", tcell.KeyRune, 'q', true},
		{"escape", tcell.KeyEscape, 0, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, true},
		{"other rune", tcell.KeyRune, 'x', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newSimScreen(t, 20, 5)
			d := NewDisplay(screen, "t", 0)
			assert.False(t, d.QuitRequested())

			screen.InjectKey(tt.key, tt.r, tcell.ModNone)
			assert.Equal(t, tt.quit, !d.Frame("", nil))
		})
	}
}

func TestDrawAssignmentHighlightsChoice(t *testing.T) {
	screen := newSimScreen(t, 40, 6)
	a, err := problems.NewAssignment([][]int{{1, 5, 9, 2}, {8, 3, 4, 6}})
	require.NoError(t, err)

	c := Canvas{screen: screen, W: 40, H: 6}
	DrawAssignment(c, a, []int{0, 1, 1, 0})
	screen.Show()

	lines := screenLines(screen)
	assert.True(t, strings.HasPrefix(lines[0], "    T0"))
	assert.Contains(t, lines[1], "R0")
	assert.Contains(t, lines[1], "  1")
	assert.Contains(t, lines[2], "  8")

	cells, w, _ := screen.GetContents()
	// R0/T0 is chosen, R1/T0 is not
	_, _, attr0 := cells[1*w+6].Style.Decompose()
	_, _, attr1 := cells[2*w+6].Style.Decompose()
	assert.NotZero(t, attr0&tcell.AttrReverse)
	assert.Zero(t, attr1&tcell.AttrReverse)
}

func TestDrawLayoutMarksItemsAndOverlap(t *testing.T) {
	screen := newSimScreen(t, 22, 22)
	l, err := problems.NewLayout(100, 100, 10, 10, 3)
	require.NoError(t, err)

	c := Canvas{screen: screen, W: 22, H: 22}
	DrawLayout(c, l, []problems.Point{{X: 0, Y: 90}, {X: 50, Y: 0}, {X: 55, Y: 5}})
	screen.Show()

	text := strings.Join(screenLines(screen), "\n")
	assert.Contains(t, text, "┌")
	assert.Contains(t, text, "█")
	assert.Contains(t, text, "▓")

	lines := screenLines(screen)
	// Item at the top-left corner of the area lands just inside the border
	assert.Equal(t, '█', []rune(lines[1])[1])
}

func TestDrawPlot(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	c := Canvas{screen: screen, W: 10, H: 5}
	DrawPlot(c, []float64{0, 1, 2, 3, 4})
	screen.Show()

	lines := screenLines(screen)
	assert.Equal(t, '•', []rune(lines[4])[0], "lowest value at the bottom")
	assert.Equal(t, '•', []rune(lines[0])[4], "highest value at the top")
}

func TestCanvasClips(t *testing.T) {
	screen := newSimScreen(t, 5, 2)
	c := Canvas{screen: screen, W: 5, H: 2}
	c.Text(3, 0, styleDefault, "abcdef")
	c.Set(-1, 0, 'x', styleDefault)
	c.Set(0, 9, 'x', styleDefault)
	screen.Show()

	lines := screenLines(screen)
	assert.Equal(t, "   ab", lines[0])
}

func TestSummary(t *testing.T) {
	out := Summary("assignment", Field{"Best fitness", "10"}, Field{"Generations", "100"})
	assert.Contains(t, out, "assignment")
	assert.Contains(t, out, "Best fitness:")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "╭")
}
