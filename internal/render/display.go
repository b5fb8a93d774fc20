// Package render draws generation records on a terminal and relays quit requests.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleItem    = tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue)
	styleOverlap = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleChosen  = tcell.StyleDefault.Reverse(true)
	stylePlot    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// OpenTerminal creates and initializes the real terminal screen.
func OpenTerminal() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// Display renders one frame per generation and watches for quit keys between frames.
type Display struct {
	screen tcell.Screen
	title  string
	delay  time.Duration
	quit   bool
}

// NewDisplay wraps an initialized screen.
func NewDisplay(screen tcell.Screen, title string, delay time.Duration) *Display {
	return &Display{screen: screen, title: title, delay: delay}
}

// Close restores the terminal
func (d *Display) Close() {
	d.screen.Fini()
}

// Frame clears the screen, draws the status line and the body, then waits the
// frame delay. It returns false once the user asked to quit.
func (d *Display) Frame(status string, body func(c Canvas)) bool {
	d.screen.Clear()
	w, h := d.screen.Size()

	c := Canvas{screen: d.screen, W: w, H: h}
	c.Text(0, 0, styleHeader, d.title)
	c.Text(len(d.title)+2, 0, styleDefault, status)
	c.Text(0, h-1, styleDim, "q / Esc: quit")

	if body != nil && h > 3 {
		body(c.Sub(0, 2, w, h-3))
	}
	d.screen.Show()

	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	return !d.QuitRequested()
}

// QuitRequested drains pending input and reports whether q, Esc or Ctrl-C was pressed.
func (d *Display) QuitRequested() bool {
	for d.screen.HasPendingEvent() {
		d.handle(d.screen.PollEvent())
	}
	return d.quit
}

// WaitKey blocks until any key is pressed.
func (d *Display) WaitKey() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventKey); ok {
			d.handle(ev)
			return
		}
		d.handle(ev)
	}
}

func (d *Display) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			d.quit = true
		case tcell.KeyRune:
			if r := ev.Rune(); r == 'q' || r == 'Q' {
				d.quit = true
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
	}
}

// Status formats the common per-generation status line.
func Status(gen int, best, mean float64) string {
	return fmt.Sprintf("gen %-5d best %-12.4f mean %.4f", gen, best, mean)
}

// Canvas is a clipped rectangular region of the screen.
type Canvas struct {
	screen tcell.Screen
	X, Y   int
	W, H   int
}

// Sub returns a region relative to c, clipped to it.
func (c Canvas) Sub(x, y, w, h int) Canvas {
	if x+w > c.W {
		w = c.W - x
	}
	if y+h > c.H {
		h = c.H - y
	}
	return Canvas{screen: c.screen, X: c.X + x, Y: c.Y + y, W: max(w, 0), H: max(h, 0)}
}

// Set draws one rune; positions outside the canvas are ignored.
func (c Canvas) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.screen.SetContent(c.X+x, c.Y+y, r, nil, style)
}

// Text draws s starting at (x, y), clipped to the canvas.
func (c Canvas) Text(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, style)
	}
}
