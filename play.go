// play.go
//
// `wordgrid play`: one game in the terminal.
// Flags fall back to the environment config (GRID_ROWS, STRICT_SCORING,
// DB_PATH). Logs go to --log, or are discarded so they never draw over
// the screen.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/stats"
	"github.com/robalobadob/wordgrid/internal/tui"
	"github.com/robalobadob/wordgrid/internal/words"
)

type playFlags struct {
	category string
	rows     int
	strict   bool
	seed     uint64
	daily    bool
	noTimer  bool
	sound    bool
	db       string
	player   string
	logFile  string
}

func playCmd() *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				f.strict = cfg.StrictScoring
			}
			if !cmd.Flags().Changed("db") {
				f.db = cfg.DBPath
			}
			if f.rows <= 0 {
				f.rows = cfg.Rows
			}
			return runPlay(f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.category, "category", "c", "general", "word category (general, movie, music)")
	fl.IntVar(&f.rows, "rows", 0, "number of guesses (default $GRID_ROWS or 6)")
	fl.BoolVar(&f.strict, "strict", false, "duplicate-aware scoring")
	fl.Uint64Var(&f.seed, "seed", 0, "seed the word pick (0 = random)")
	fl.BoolVar(&f.daily, "daily", false, "play today's daily word")
	fl.BoolVar(&f.noTimer, "no-timer", false, "hide the clock")
	fl.BoolVar(&f.sound, "sound", false, "play a chime when the game ends")
	fl.StringVar(&f.db, "db", "", "stats database (default $DB_PATH, empty disables streaks)")
	fl.StringVar(&f.player, "player", "local", "local player name for streaks")
	fl.StringVar(&f.logFile, "log", "", "write logs to this file")
	return cmd
}

func runPlay(f playFlags) error {
	closeLog, err := fileLogger(f.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	bank, err := words.Load()
	if err != nil {
		return err
	}
	cat, err := words.ParseCategory(f.category)
	if err != nil {
		return err
	}

	dialog := &tui.Dialog{}
	presenters := tui.Presenters{dialog}
	if f.sound {
		if chime, err := tui.NewChime(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable")
		} else {
			defer chime.Close()
			presenters = append(presenters, chime)
		}
	}

	opts := game.Options{
		Words:         bank,
		Category:      cat,
		Rows:          f.rows,
		StrictScoring: f.strict,
		DisableTimer:  f.noTimer,
		Presenter:     presenters,
	}
	title := "WORDGRID · " + strings.ToUpper(string(cat))
	switch {
	case f.daily:
		src := daily.Source{Date: time.Now(), Salt: cfg.DailySalt}
		opts.Category, opts.Source = words.General, src
		title = "WORDGRID · DAILY " + src.Key()
	case f.seed != 0:
		opts.Source = words.NewSeeded(f.seed)
	}

	if f.db != "" {
		st, err := stats.Open(f.db)
		if err != nil {
			log.Warn().Err(err).Msg("stats disabled")
		} else {
			defer st.Close()
			p, err := st.EnsureLocalPlayer(context.Background(), f.player)
			if err != nil {
				log.Warn().Err(err).Str("player", f.player).Msg("stats disabled")
			} else {
				opts.Streak = st.Tracker(p.ID)
			}
		}
	}

	g := game.NewController(opts)
	if err := g.Start(); err != nil {
		return err
	}
	log.Info().Str("category", string(opts.Category)).Int("rows", g.Rows()).Msg("game started")

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	err = tui.New(screen, g, dialog, title).Run()
	screen.Fini()
	if err != nil {
		return err
	}

	if r, done := dialog.Result(); done {
		log.Info().Str("state", r.Outcome.State.String()).Int("attempts", r.Attempts).Msg("game finished")
		fmt.Printf("%s  %s in %d\n", strings.ToUpper(r.Secret), r.Outcome.State, r.Attempts)
	}
	return nil
}

// fileLogger points the global logger at path, or silences it when path is
// empty since the terminal belongs to the game.
func fileLogger(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(fh).With().Timestamp().Logger()
	return func() { _ = fh.Close() }, nil
}
