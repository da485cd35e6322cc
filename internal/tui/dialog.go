// internal/tui/dialog.go
//
// End-of-game dialog: a bordered box summing up the finished game.
// Presenters fans one result out to several presenters.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Dialog is the end-of-game box. It implements game.DialogPresenter.
type Dialog struct {
	result  game.Result
	visible bool
}

// Present stores the result and shows the dialog.
func (d *Dialog) Present(r game.Result) {
	d.result = r
	d.visible = true
}

func (d *Dialog) Visible() bool { return d.visible }

func (d *Dialog) Dismiss() { d.visible = false }

// Result returns the last presented result.
func (d *Dialog) Result() (game.Result, bool) { return d.result, d.result.Outcome.State.Terminal() }

// Lines is the dialog text.
func (d *Dialog) Lines() []string {
	r := d.result
	var lines []string
	switch r.Outcome.State {
	case game.Won:
		lines = append(lines, "You win!", fmt.Sprintf("Solved in %d %s", r.Attempts, plural(r.Attempts, "guess", "guesses")))
	case game.Lost:
		lines = append(lines, "Out of guesses", "The word was "+strings.ToUpper(r.Secret))
	default:
		return nil
	}
	if r.Outcome.Elapsed > 0 {
		lines = append(lines, "Time "+r.Outcome.Elapsed.Round(time.Second).String())
	}
	if r.Streak > 0 {
		lines = append(lines, fmt.Sprintf("Streak %d", r.Streak))
	}
	return append(lines, "", "press any key")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Draw paints the dialog centred on a w×h screen.
func (d *Dialog) Draw(s tcell.Screen, w, h int) {
	if !d.visible {
		return
	}
	lines := d.Lines()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 2
	x0, y0 := (w-boxW)/2, (h-boxH)/2

	frame := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			s.SetContent(x, y, ' ', nil, frame)
		}
	}
	for i, l := range lines {
		st := frame
		if i == 0 {
			st = st.Bold(true)
		}
		put(s, x0+(boxW-len(l))/2, y0+1+i, l, st)
	}
}

// Presenters fans a result out to several presenters.
type Presenters []game.DialogPresenter

func (ps Presenters) Present(r game.Result) {
	for _, p := range ps {
		if p != nil {
			p.Present(r)
		}
	}
}
