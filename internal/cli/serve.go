package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/unscramble/internal/httpserver"
	"github.com/robalobadob/unscramble/internal/store"
	"github.com/robalobadob/unscramble/internal/words"
)

func (a *App) newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Long: `Run the HTTP and WebSocket server.

Word lists come from WORDS_DB, or WORDS_FILE / BANNED_WORDS_FILE, or the
embedded defaults, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func (a *App) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	lists, err := words.Load(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}

	srv := httpserver.New(store.NewMemoryStore(), lists, a.cfg)
	log.Info().Str("port", a.cfg.Port).Int("words", len(lists.Pack)).Msg("starting unscramble server")
	return srv.Start(ctx, ":"+a.cfg.Port)
}
