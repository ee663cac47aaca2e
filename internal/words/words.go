// internal/words/words.go
//
// Loads the raw word pack and banned-substring list that feed the game engine.
//
// Sources, in order of precedence (Load):
//   1. WORDS_DB set     → read both lists from the SQLite word database.
//   2. WORDS_FILE / BANNED_WORDS_FILE set → read those files (each independently;
//      an unset one falls back to its embedded default).
//   3. Neither          → embedded defaults from the assets package.
//
// Formats:
//   - Word pack:   newline-delimited, blank lines and "#" comments skipped.
//   - Banned list: JSON array of strings.
//
// The lists are returned raw (trimmed only). Normalization belongs to the
// engine, which applies it when the lists are loaded into a game state.

package words

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/assets"
	"github.com/robalobadob/unscramble/internal/config"
)

// ErrEmptyPack is returned when a source produced no words at all.
var ErrEmptyPack = errors.New("words: word pack is empty")

// Lists is what a source produces.
type Lists struct {
	Pack   []string
	Banned []string
}

// Load resolves the configured source and reads both lists.
func Load(ctx context.Context, cfg config.Config) (Lists, error) {
	var (
		out Lists
		err error
	)
	if cfg.WordsDB != "" {
		out, err = loadFromDB(ctx, cfg.WordsDB, cfg.WordPack)
		if err != nil {
			return Lists{}, err
		}
		log.Info().Str("db", cfg.WordsDB).Str("pack", cfg.WordPack).Int("words", len(out.Pack)).Msg("word lists loaded from database")
	} else {
		out, err = loadFromFiles(cfg.WordsFile, cfg.BannedWordsFile)
		if err != nil {
			return Lists{}, err
		}
		log.Info().Str("words", orEmbedded(cfg.WordsFile)).Str("banned", orEmbedded(cfg.BannedWordsFile)).
			Int("count", len(out.Pack)).Msg("word lists loaded")
	}
	if len(out.Pack) == 0 {
		return Lists{}, ErrEmptyPack
	}
	return out, nil
}

func loadFromDB(ctx context.Context, dsn, pack string) (Lists, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return Lists{}, err
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		return Lists{}, err
	}
	p, err := LoadPack(ctx, db, pack)
	if err != nil {
		return Lists{}, err
	}
	b, err := LoadBanned(ctx, db)
	if err != nil {
		return Lists{}, err
	}
	return Lists{Pack: p, Banned: b}, nil
}

func loadFromFiles(wordsPath, bannedPath string) (Lists, error) {
	var out Lists
	var err error

	if wordsPath != "" {
		out.Pack, err = ReadWordFile(wordsPath)
	} else {
		var raw []byte
		if raw, err = assets.Words(); err == nil {
			out.Pack, err = ReadWords(bytes.NewReader(raw))
		}
	}
	if err != nil {
		return Lists{}, fmt.Errorf("read word pack: %w", err)
	}

	if bannedPath != "" {
		out.Banned, err = ReadBannedFile(bannedPath)
	} else {
		var raw []byte
		if raw, err = assets.Banned(); err == nil {
			out.Banned, err = ParseBanned(bytes.NewReader(raw))
		}
	}
	if err != nil {
		return Lists{}, fmt.Errorf("read banned words: %w", err)
	}
	return out, nil
}

// ReadWordFile loads one word per line from a file.
func ReadWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadWords(f)
}

// ReadWords reads one word per line, skipping blanks and "#" comments.
func ReadWords(r io.Reader) ([]string, error) {
	out := []string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// ReadBannedFile loads a JSON array of banned substrings from a file.
func ReadBannedFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBanned(f)
}

// ParseBanned decodes a JSON array of strings. Blank entries are dropped.
func ParseBanned(r io.Reader) ([]string, error) {
	var raw []string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode banned list: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out, nil
}

func orEmbedded(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
