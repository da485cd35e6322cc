// main.go
//
// Entry point for the wordgrid binary.
//   - Loads configuration (.env + environment) and sets the global log level
//     before any subcommand runs.
//   - Subcommands: `serve` (HTTP API) and `play` (terminal client).

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/internal/config"
)

var cfg config.Config

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

// Execute builds the command tree and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:          "wordgrid",
		Short:        "Guess the five-letter word, one key tap at a time",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			cfg.ApplyLogLevel()
		},
	}
	root.AddCommand(serveCmd(), playCmd())

	return root.Execute()
}
