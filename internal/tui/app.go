// internal/tui/app.go
//
// Interactive terminal client for `wordgrid play`.
//   - Draws the board, the keyboard, a status line and the end-of-game dialog.
//   - Letters type into the grid, Backspace/Delete erase, Esc or Ctrl-C quit.
//   - Once the dialog is showing, any key closes the app.
//
// Input is read on a goroutine and fed through a channel; a ticker redraws
// the status line so the clock keeps moving.

package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
)

// Game is what the app needs from a controller.
type Game interface {
	game.BoardDataSource
	game.KeyTapListener
	LetterHints() map[rune]game.Verdict
	State() game.State
	Elapsed() time.Duration
	Attempts() int
	Rows() int
}

// App owns the screen for one game.
type App struct {
	screen tcell.Screen
	game   Game
	board  Board
	keys   Keyboard
	dialog *Dialog
	title  string
	status string
	tick   time.Duration
}

// New returns an app drawing g on screen. d must be the controller's
// presenter (directly or inside Presenters).
func New(screen tcell.Screen, g Game, d *Dialog, title string) *App {
	return &App{
		screen: screen,
		game:   g,
		board:  Board{Source: g},
		keys:   Keyboard{Hints: g.LetterHints},
		dialog: d,
		title:  title,
		tick:   time.Second,
	}
}

// Run processes events until the player quits or dismisses the dialog.
func (a *App) Run() error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go a.pump(events, done)

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
		}
		a.Draw()
	}
}

// pump feeds screen events into events until the screen is finalized or
// done is closed.
func (a *App) pump(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep going.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if a.dialog.Visible() {
			a.dialog.Dismiss()
			return false
		}
		handled, err := a.keys.Dispatch(ev, a.game)
		if handled {
			a.status = statusFor(err)
		}
		if err != nil && !errors.Is(err, game.ErrInvalidLetter) {
			log.Warn().Err(err).Msg("tap")
		}
	}
	return true
}

// statusFor turns a tap error into a status line message.
func statusFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, game.ErrInvalidLetter):
		return "letters a-z only"
	case errors.Is(err, game.ErrStreakRecord):
		return "streak not saved"
	case errors.Is(err, game.ErrGameOver):
		return "game over"
	}
	return err.Error()
}

// Draw repaints the whole screen.
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()

	bw, bh := a.board.Size()
	kw, kh := a.keys.Size()
	y := 1
	put(s, max(0, (w-len(a.title))/2), y, a.title, styleText.Bold(true))
	y += 2
	a.board.Draw(s, max(0, (w-bw)/2), y)
	y += bh + 2
	a.keys.Draw(s, max(0, (w-kw)/2), y)
	y += kh + 2

	line := fmt.Sprintf("row %d/%d  %s", min(a.game.Attempts()+1, a.game.Rows()), a.game.Rows(),
		a.game.Elapsed().Round(time.Second))
	put(s, max(0, (w-len(line))/2), y, line, styleDim)
	if a.status != "" {
		put(s, max(0, (w-len(a.status))/2), y+1, a.status, styleError)
	}

	a.dialog.Draw(s, w, h)
	s.Show()
}
