// internal/words/sqlite.go
//
// SQLite-backed word database.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded sql/*.sql migrations with goose.
//   - Importing a named word pack and the banned list; reading them back in order.
//
// Tables: word_packs(name), pack_words(pack, position, word), banned_words(word).

package words

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// ErrUnknownPack is returned by LoadPack when no pack has the given name.
var ErrUnknownPack = errors.New("words: unknown word pack")

// OpenDB opens (and creates if missing) a SQLite database file.
func OpenDB(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/words.db, etc.
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", withPragmas(dsn))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded sql/*.sql migrations with goose. Applied
// versions are tracked in goose's own table, so re-running is a no-op.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Debug().Msgf(strings.TrimSpace(format), v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatal().Msgf(strings.TrimSpace(format), v...)
}

// withPragmas appends the driver options to dsn, keeping any query it
// already carries.
func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
}

// ImportPack replaces the pack called name with words, keeping their order.
func ImportPack(ctx context.Context, db *sql.DB, name string, words []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_packs WHERE name=?`, name); err != nil {
		return fmt.Errorf("clear pack %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO word_packs(name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("create pack %s: %w", name, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pack_words(pack, position, word) VALUES (?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, name, i, w); err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
	}
	return tx.Commit()
}

// ImportBanned replaces the banned list.
func ImportBanned(ctx context.Context, db *sql.DB, banned []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM banned_words`); err != nil {
		return fmt.Errorf("clear banned words: %w", err)
	}
	for _, w := range banned {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO banned_words(word) VALUES (?)`, w); err != nil {
			return fmt.Errorf("insert banned %q: %w", w, err)
		}
	}
	return tx.Commit()
}

// LoadPack returns the words of the named pack in import order.
func LoadPack(ctx context.Context, db *sql.DB, name string) ([]string, error) {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM word_packs WHERE name=?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPack, name)
	}
	if err != nil {
		return nil, err
	}
	return queryStrings(ctx, db, `SELECT word FROM pack_words WHERE pack=? ORDER BY position`, name)
}

// LoadBanned returns the banned list (alphabetical).
func LoadBanned(ctx context.Context, db *sql.DB) ([]string, error) {
	return queryStrings(ctx, db, `SELECT word FROM banned_words ORDER BY word`)
}

// PackNames lists every stored pack.
func PackNames(ctx context.Context, db *sql.DB) ([]string, error) {
	return queryStrings(ctx, db, `SELECT name FROM word_packs ORDER BY name`)
}

func queryStrings(ctx context.Context, db *sql.DB, q string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
