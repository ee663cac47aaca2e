package words

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robalobadob/unscramble/internal/config"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "words.db")
	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Second run must be a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate again: %v", err)
	}
	return dsn
}

func TestSQLite_ImportAndLoad(t *testing.T) {
	ctx := context.Background()
	dsn := openTestDB(t)
	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := ImportPack(ctx, db, "fruit", []string{"cherry", "apple", "banana"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := ImportBanned(ctx, db, []string{"pp", "an", "pp"}); err != nil {
		t.Fatalf("import banned: %v", err)
	}

	got, err := LoadPack(ctx, db, "fruit")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"cherry", "apple", "banana"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pack = %v, want %v", got, want)
	}
	banned, err := LoadBanned(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"an", "pp"}; !reflect.DeepEqual(banned, want) {
		t.Errorf("banned = %v, want %v", banned, want)
	}
}

func TestSQLite_ReimportReplaces(t *testing.T) {
	ctx := context.Background()
	db, err := OpenDB(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := ImportPack(ctx, db, "p", []string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := ImportPack(ctx, db, "p", []string{"z"}); err != nil {
		t.Fatal(err)
	}
	got, err := LoadPack(ctx, db, "p")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("pack = %v", got)
	}
	names, err := PackNames(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"p"}) {
		t.Errorf("names = %v", names)
	}
}

func TestSQLite_UnknownPack(t *testing.T) {
	db, err := OpenDB(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := LoadPack(context.Background(), db, "missing"); !errors.Is(err, ErrUnknownPack) {
		t.Errorf("expected ErrUnknownPack, got %v", err)
	}
}

func TestLoad_FromDatabase(t *testing.T) {
	ctx := context.Background()
	dsn := openTestDB(t)
	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	if err := ImportPack(ctx, db, config.DefaultPack, []string{"ab"}); err != nil {
		t.Fatal(err)
	}
	if err := ImportBanned(ctx, db, []string{"ba"}); err != nil {
		t.Fatal(err)
	}
	db.Close()

	lists, err := Load(ctx, config.Config{WordsDB: dsn, WordPack: config.DefaultPack})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(lists.Pack, []string{"ab"}) || !reflect.DeepEqual(lists.Banned, []string{"ba"}) {
		t.Errorf("unexpected lists %+v", lists)
	}
}

func TestWithPragmas(t *testing.T) {
	cases := map[string]string{
		"words.db":                   "words.db?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on",
		"file:words.db?cache=shared": "file:words.db?cache=shared&_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on",
	}
	for in, want := range cases {
		if got := withPragmas(in); got != want {
			t.Errorf("withPragmas(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenDB_DSNWithQuery(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "data", "words.db") + "?cache=shared"
	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := ImportPack(ctx, db, "default", []string{"apple"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := LoadPack(ctx, db, "default")
	if err != nil || !reflect.DeepEqual(got, []string{"apple"}) {
		t.Errorf("load = %v, %v", got, err)
	}
}

func TestMigrate_RecordsVersion(t *testing.T) {
	db, err := OpenDB(openTestDB(t))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var version int64
	if err := db.QueryRow(`SELECT MAX(version_id) FROM goose_db_version`).Scan(&version); err != nil {
		t.Fatalf("query goose_db_version: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}
