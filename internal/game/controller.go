// internal/game/controller.go
//
// Game controller for a single session.
// Responsibilities:
//   - Draw the secret word once at Start from the word bank and an injected source.
//   - Route key and delete taps into the grid.
//   - Score a row the moment it is completed and detect win/loss.
//   - Measure elapsed time, update the optional win streak, and hand the
//     result to the dialog presenter exactly once.
//
// State transitions:
//   NotStarted --Start--> InProgress --row all Correct--> Won
//                                    --grid full-------> Lost
//
// Taps outside InProgress are rejected with ErrNotStarted or ErrGameOver and
// leave the grid untouched. A Controller is not safe for concurrent use.

package game

import (
	"fmt"
	"time"
	"unicode"

	"github.com/robalobadob/wordgrid/internal/words"
)

// WordPicker supplies the secret word for a category.
type WordPicker interface {
	Pick(c words.Category, src words.Source) (string, error)
}

// Options configures a Controller. Only one of Words or Secret is required.
type Options struct {
	Words    WordPicker     // word bank to draw from
	Category words.Category // defaults to words.General
	Source   words.Source   // defaults to words.Crypto
	Secret   string         // fixed secret word; skips the bank

	Rows int // attempts, defaults to DefaultRows

	StrictScoring bool // duplicate-aware two-pass scoring instead of membership
	DisableTimer  bool // report zero elapsed time

	Clock     Clock           // defaults to time.Now
	Streak    StreakTracker   // optional win-streak counter
	Presenter DialogPresenter // optional, called once on game end
}

// Controller is the state machine for one game.
type Controller struct {
	opts    Options
	score   Scorer
	grid    *Grid
	secret  string
	state   State
	started time.Time
	outcome Outcome
	streak  int
}

// NewController returns a controller in NotStarted.
func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Category == "" {
		opts.Category = words.General
	}
	score := Score
	if opts.StrictScoring {
		score = ScoreStrict
	}
	return &Controller{opts: opts, score: score, outcome: Outcome{Row: -1}}
}

// Start draws the secret word, resets the grid and starts the clock.
func (c *Controller) Start() error {
	if c.state != NotStarted {
		return ErrAlreadyStarted
	}
	secret, err := c.pickSecret()
	if err != nil {
		return err
	}
	c.secret = secret
	c.grid = NewGrid(c.opts.Rows, len([]rune(secret)))
	c.started = c.opts.Clock()
	c.state = InProgress
	return nil
}

func (c *Controller) pickSecret() (string, error) {
	if c.opts.Secret != "" {
		s := []rune(c.opts.Secret)
		if len(s) != words.WordLength {
			return "", fmt.Errorf("secret %q: want %d letters: %w", c.opts.Secret, words.WordLength, words.ErrInvalidWord)
		}
		for i, r := range s {
			r = unicode.ToLower(r)
			if r < 'a' || r > 'z' {
				return "", fmt.Errorf("secret %q: %w", c.opts.Secret, words.ErrInvalidWord)
			}
			s[i] = r
		}
		return string(s), nil
	}
	if c.opts.Words == nil {
		return "", fmt.Errorf("no word bank configured: %w", words.ErrEmptyCategory)
	}
	w, err := c.opts.Words.Pick(c.opts.Category, c.opts.Source)
	if err != nil {
		return "", fmt.Errorf("pick secret: %w", err)
	}
	return w, nil
}

// OnKeyTap enters one letter. Letters are lowercased; anything outside a–z
// is rejected with ErrInvalidLetter.
//
// When the tap ends the game and the streak tracker fails, the transition
// still happens and an error wrapping ErrStreakRecord is returned.
func (c *Controller) OnKeyTap(letter rune) error {
	if err := c.checkPlaying(); err != nil {
		return err
	}
	letter = unicode.ToLower(letter)
	if letter < 'a' || letter > 'z' {
		return ErrInvalidLetter
	}
	if err := c.grid.Insert(letter); err != nil {
		return err
	}

	cols := c.grid.Cols()
	if c.grid.Filled()%cols != 0 {
		return nil
	}
	row := c.grid.Filled()/cols - 1
	switch {
	case AllCorrect(c.score(c.grid.Row(row), c.secret)):
		return c.finish(Won, row)
	case c.grid.IsFull():
		return c.finish(Lost, -1)
	}
	return nil
}

// OnDeleteTap removes the most recent letter. Deleting on an empty grid is
// a no-op.
func (c *Controller) OnDeleteTap() error {
	if err := c.checkPlaying(); err != nil {
		return err
	}
	c.grid.Delete()
	return nil
}

func (c *Controller) checkPlaying() error {
	switch c.state {
	case NotStarted:
		return ErrNotStarted
	case Won, Lost:
		return ErrGameOver
	}
	return nil
}

func (c *Controller) finish(st State, row int) error {
	c.state = st
	c.outcome = Outcome{State: st, Row: row}
	if !c.opts.DisableTimer {
		c.outcome.Elapsed = c.opts.Clock().Sub(c.started)
	}

	var trackErr error
	if c.opts.Streak != nil {
		n, err := c.opts.Streak.Record(st == Won)
		if err != nil {
			trackErr = fmt.Errorf("%w: %w", ErrStreakRecord, err)
		} else {
			c.streak = n
		}
	}
	if c.opts.Presenter != nil {
		c.opts.Presenter.Present(c.Result())
	}
	return trackErr
}

// State reports the lifecycle state.
func (c *Controller) State() State { return c.state }

// Outcome reports the current outcome; State is InProgress/NotStarted until
// the game ends.
func (c *Controller) Outcome() Outcome {
	if !c.state.Terminal() {
		return Outcome{State: c.state, Row: -1}
	}
	return c.outcome
}

// Result summarises a finished game.
func (c *Controller) Result() Result {
	return Result{
		Outcome:  c.Outcome(),
		Attempts: c.Attempts(),
		Secret:   c.secret,
		Streak:   c.streak,
	}
}

// Attempts is the number of rows used: the winning row + 1, every row on a
// loss, or the completed rows while playing.
func (c *Controller) Attempts() int {
	switch c.state {
	case Won:
		return c.outcome.Row + 1
	case Lost:
		return c.grid.Rows()
	case InProgress:
		return c.grid.Filled() / c.grid.Cols()
	}
	return 0
}

// Elapsed is the time since Start, frozen once the game has ended.
func (c *Controller) Elapsed() time.Duration {
	switch {
	case c.state == NotStarted || c.opts.DisableTimer:
		return 0
	case c.state.Terminal():
		return c.outcome.Elapsed
	}
	return c.opts.Clock().Sub(c.started)
}

// Secret returns the secret word. Callers decide when to reveal it.
func (c *Controller) Secret() string { return c.secret }

// Category is the word bank category this game draws from.
func (c *Controller) Category() words.Category { return c.opts.Category }

// Rows and Cols are the grid dimensions; zero before Start.
func (c *Controller) Rows() int {
	if c.grid == nil {
		return 0
	}
	return c.grid.Rows()
}

func (c *Controller) Cols() int {
	if c.grid == nil {
		return 0
	}
	return c.grid.Cols()
}

// CurrentGuesses returns a copy of the grid, rows of cells, 0 for empty.
func (c *Controller) CurrentGuesses() [][]rune {
	if c.grid == nil {
		return nil
	}
	return c.grid.Snapshot()
}

// RowVerdicts scores one row; all Unknown while the row is incomplete.
func (c *Controller) RowVerdicts(row int) []Verdict {
	if c.grid == nil {
		return nil
	}
	if !c.grid.IsRowComplete(row) {
		return make([]Verdict, c.grid.Cols())
	}
	return c.score(c.grid.Row(row), c.secret)
}

// VerdictAt scores a single cell.
func (c *Controller) VerdictAt(row, col int) Verdict {
	if c.grid == nil || col < 0 || col >= c.grid.Cols() {
		return Unknown
	}
	return c.RowVerdicts(row)[col]
}

// LetterHints returns the best verdict seen for each letter across completed
// rows, for colouring an on-screen keyboard.
func (c *Controller) LetterHints() map[rune]Verdict {
	out := make(map[rune]Verdict)
	if c.grid == nil {
		return out
	}
	for r := 0; r < c.grid.Rows() && c.grid.IsRowComplete(r); r++ {
		row := c.grid.Row(r)
		for i, v := range c.score(row, c.secret) {
			if v > out[row[i]] {
				out[row[i]] = v
			}
		}
	}
	return out
}

var (
	_ BoardDataSource = (*Controller)(nil)
	_ KeyTapListener  = (*Controller)(nil)
)
