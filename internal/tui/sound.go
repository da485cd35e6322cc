// internal/tui/sound.go
//
// Optional end-of-game chime via beep's speaker. Opening the audio device
// can fail on headless machines; `play --sound` then carries on silently.

package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 120 * time.Millisecond
)

// Chime plays a short jingle when a game ends. It implements
// game.DialogPresenter so it can sit next to the Dialog in Presenters.
type Chime struct {
	rate beep.SampleRate
}

// NewChime opens the audio device. Callers should treat an error as "no
// sound" and carry on.
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{rate: sampleRate}, nil
}

// Present plays the jingle for the result's outcome.
func (c *Chime) Present(r game.Result) {
	notes := jingle(r.Outcome.State)
	if len(notes) == 0 {
		return
	}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		sine, err := generators.SineTone(c.rate, f)
		if err != nil {
			log.Warn().Err(err).Float64("freq", f).Msg("chime")
			return
		}
		seq = append(seq, beep.Take(c.rate.N(noteLength), sine))
	}
	speaker.Play(beep.Seq(seq...))
}

// Close releases the audio device.
func (c *Chime) Close() { speaker.Close() }

// jingle returns note frequencies in Hz: a rising C major arpeggio for a
// win, a falling minor third for a loss.
func jingle(st game.State) []float64 {
	switch st {
	case game.Won:
		return []float64{523.25, 659.25, 783.99}
	case game.Lost:
		return []float64{392.00, 311.13}
	}
	return nil
}
