// internal/tui/board.go
//
// Terminal rendering of the guess grid and the on-screen keyboard.
//   - Board reads a game.BoardDataSource and paints one coloured box per cell.
//   - Keyboard paints the three QWERTY rows plus DELETE, tinted by the best
//     verdict seen for each letter, and turns key events into taps.

package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/robalobadob/wordgrid/internal/game"
)

const (
	cellWidth = 3 // " X "
	cellGap   = 1
	deleteKey = " DEL "
)

// KeyRows is the on-screen keyboard layout.
var KeyRows = [...]string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleTyped   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	styleAbsent  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)
	stylePresent = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleKey     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
)

// verdictStyle maps a verdict to its cell colour.
func verdictStyle(v game.Verdict) tcell.Style {
	switch v {
	case game.Correct:
		return styleCorrect
	case game.Present:
		return stylePresent
	case game.Absent:
		return styleAbsent
	}
	return styleTyped
}

// put writes str starting at (x, y) and returns the next column.
func put(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Board draws the guess grid.
type Board struct {
	Source game.BoardDataSource
}

// Size is the board's footprint in terminal cells.
func (b Board) Size() (w, h int) {
	rows := b.Source.CurrentGuesses()
	if len(rows) == 0 {
		return 0, 0
	}
	cols := len(rows[0])
	return cols*(cellWidth+cellGap) - cellGap, len(rows)*2 - 1
}

// Draw paints the grid with its top-left corner at (x, y). Rows are
// separated by a blank line.
func (b Board) Draw(s tcell.Screen, x, y int) {
	for r, row := range b.Source.CurrentGuesses() {
		for c, ch := range row {
			cx := x + c*(cellWidth+cellGap)
			cy := y + r*2
			if ch == 0 {
				put(s, cx, cy, " · ", styleEmpty)
				continue
			}
			st := verdictStyle(b.Source.VerdictAt(r, c))
			put(s, cx, cy, " "+string(unicode.ToUpper(ch))+" ", st)
		}
	}
}

// Keyboard draws the on-screen keys and dispatches key events.
type Keyboard struct {
	// Hints returns the best verdict per letter; nil draws plain keys.
	Hints func() map[rune]game.Verdict
}

// Size is the keyboard's footprint in terminal cells.
func (k Keyboard) Size() (w, h int) {
	w = len(KeyRows[0]) * (cellWidth + cellGap)
	return w - cellGap, len(KeyRows)*2 - 1
}

// Draw paints the keyboard with its top-left corner at (x, y). Shorter rows
// are centred under the top row.
func (k Keyboard) Draw(s tcell.Screen, x, y int) {
	var hints map[rune]game.Verdict
	if k.Hints != nil {
		hints = k.Hints()
	}
	full, _ := k.Size()
	for i, row := range KeyRows {
		rowW := len(row)*(cellWidth+cellGap) - cellGap
		if i == len(KeyRows)-1 {
			rowW += cellGap + len(deleteKey)
		}
		cx := x + (full-rowW)/2
		cy := y + i*2
		for _, r := range row {
			st := styleKey
			if v, ok := hints[r]; ok && v != game.Unknown {
				st = verdictStyle(v)
			}
			put(s, cx, cy, " "+string(unicode.ToUpper(r))+" ", st)
			cx += cellWidth + cellGap
		}
		if i == len(KeyRows)-1 {
			put(s, cx, cy, deleteKey, styleKey)
		}
	}
}

// Dispatch forwards a key event to l. Letters become OnKeyTap, Backspace and
// Delete become OnDeleteTap; other keys are ignored and report handled=false.
func (k Keyboard) Dispatch(ev *tcell.EventKey, l game.KeyTapListener) (handled bool, err error) {
	switch ev.Key() {
	case tcell.KeyRune:
		return true, l.OnKeyTap(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return true, l.OnDeleteTap()
	}
	return false, nil
}
