// internal/game/types.go
//
// Core type definitions for the guess-grid game.
// Defines:
//   - Verdict: per-cell result of a scored row (unknown/absent/present/correct).
//   - State:   controller lifecycle (not started → in progress → won/lost).
//   - Outcome: terminal result handed to the dialog presenter.
//   - The narrow interfaces renderers and the controller talk through.

package game

import (
	"errors"
	"time"
)

const (
	DefaultRows = 6
	DefaultCols = 5
)

var (
	ErrGridFull       = errors.New("grid full")
	ErrGameOver       = errors.New("game finished")
	ErrNotStarted     = errors.New("game not started")
	ErrAlreadyStarted = errors.New("game already started")
	ErrInvalidLetter  = errors.New("invalid letter")
	ErrStreakRecord   = errors.New("record streak")
)

// Verdict represents the evaluation result for a single cell.
type Verdict int

const (
	Unknown Verdict = iota // row not complete yet
	Absent                 // letter not in the secret word
	Present                // letter in the secret word, other position
	Correct                // letter in the right position
)

func (v Verdict) String() string {
	switch v {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return "unknown"
}

// State is the controller lifecycle.
type State int

const (
	NotStarted State = iota
	InProgress
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "not_started"
}

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool { return s == Won || s == Lost }

// Outcome is the game result once the controller leaves InProgress.
// Row is the winning row index and is -1 for a loss.
type Outcome struct {
	State   State
	Row     int
	Elapsed time.Duration
}

// Result is what the dialog presenter receives exactly once per game.
type Result struct {
	Outcome  Outcome
	Attempts int    // rows used, Row+1 on a win
	Secret   string // revealed answer
	Streak   int    // current win streak, 0 when no tracker is configured
}

// BoardDataSource is read by board renderers; it never mutates state.
type BoardDataSource interface {
	CurrentGuesses() [][]rune
	VerdictAt(row, col int) Verdict
}

// KeyTapListener receives keyboard taps.
type KeyTapListener interface {
	OnKeyTap(letter rune) error
	OnDeleteTap() error
}

// DialogPresenter displays the final result of a game.
type DialogPresenter interface {
	Present(Result)
}

// StreakTracker records finished games and reports the current win streak.
type StreakTracker interface {
	Record(won bool) (streak int, err error)
}

// Clock abstracts time for elapsed-time measurement.
type Clock func() time.Time
