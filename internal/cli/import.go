package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/unscramble/internal/config"
	"github.com/robalobadob/unscramble/internal/words"
)

type importOptions struct {
	db     string
	pack   string
	banned string
}

func (a *App) newImportCmd() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import <words-file>",
		Short: "Import a word pack into the SQLite word database",
		Long: `Import a word pack into the SQLite word database.

The words file has one word or phrase per line; blank lines and lines
starting with # are ignored. Importing an existing pack replaces it.
With --banned, the banned list is replaced from a JSON array file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.db == "" {
				opts.db = a.cfg.WordsDB
			}
			if opts.db == "" {
				return fmt.Errorf("no database given: set --db or WORDS_DB")
			}
			n, err := importWords(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "imported %d words into pack %q\n", n, opts.pack)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite database path (default WORDS_DB)")
	cmd.Flags().StringVar(&opts.pack, "pack", config.DefaultPack, "Pack name")
	cmd.Flags().StringVar(&opts.banned, "banned", "", "JSON array of banned substrings")
	return cmd
}

// importWords loads wordsPath (and the optional banned file) into the
// database, returning the number of words stored.
func importWords(ctx context.Context, opts *importOptions, wordsPath string) (int, error) {
	list, err := words.ReadWordFile(wordsPath)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, words.ErrEmptyPack
	}
	var banned []string
	if opts.banned != "" {
		if banned, err = words.ReadBannedFile(opts.banned); err != nil {
			return 0, err
		}
	}

	db, err := words.OpenDB(opts.db)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := migrateAndImport(ctx, db, opts, list, banned); err != nil {
		return 0, err
	}
	packs, err := words.PackNames(ctx, db)
	if err != nil {
		return 0, err
	}
	log.Info().Str("db", opts.db).Str("pack", opts.pack).Int("words", len(list)).Strs("packs", packs).Msg("word pack imported")
	return len(list), nil
}

func migrateAndImport(ctx context.Context, db *sql.DB, opts *importOptions, list, banned []string) error {
	if err := words.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := words.ImportPack(ctx, db, opts.pack, list); err != nil {
		return err
	}
	if opts.banned != "" {
		if err := words.ImportBanned(ctx, db, banned); err != nil {
			return err
		}
	}
	return nil
}
