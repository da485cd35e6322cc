// serve.go
//
// `wordgrid serve`: loads the word bank, opens the stats database when
// DB_PATH is set, and runs the HTTP API until the process is stopped.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/stats"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
			}
			bank, err := words.Load()
			if err != nil {
				return err
			}
			log.Info().Interface("words", bank.Stats()).Msg("word lists loaded")

			var db *stats.Store
			if cfg.DBPath != "" {
				if db, err = stats.Open(cfg.DBPath); err != nil {
					return err
				}
				defer db.Close()
				log.Info().Str("path", cfg.DBPath).Msg("stats database ready")
			} else {
				log.Warn().Msg("DB_PATH empty, accounts and streaks disabled")
			}

			srv := httpserver.New(cfg, store.NewMemoryStore(), bank, db)
			log.Info().Str("port", cfg.Port).Msg("starting wordgrid server")
			return srv.Start(":" + cfg.Port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 5175)")
	return cmd
}
