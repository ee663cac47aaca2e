// Package cli wires the unscramble commands: serve, play and import.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/unscramble/internal/config"
)

// App holds the I/O streams and configuration shared by all commands.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	cfg    config.Config
}

// NewApp creates an App on the process streams with configuration from the
// environment.
func NewApp() *App {
	return &App{stdin: os.Stdin, stdout: os.Stdout, cfg: config.Load()}
}

// Root builds the command tree.
func (a *App) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "unscramble",
		Short:         "Word-unscrambling game server and terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg.ApplyLogLevel()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	root.AddCommand(a.newServeCmd(), a.newPlayCmd(), a.newImportCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := NewApp().Root().ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("unscramble")
	}
}
