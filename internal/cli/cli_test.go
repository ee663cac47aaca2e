package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/unscramble/internal/config"
	"github.com/robalobadob/unscramble/internal/words"
)

func TestPlay_Session(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Apple \nnope\n:skip\n:end\n")
	lists := words.Lists{Pack: []string{"apple"}, Banned: []string{}}

	if err := play(context.Background(), in, &out, lists, 7); err != nil {
		t.Fatalf("play: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		`correct! it was "apple"`,
		`not quite: "nope"`,
		"[1 guessed, 1 skipped]",
		"game over: 1 guessed, 1 skipped",
		"guessed",
		"missed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "APPLE\n") {
		t.Errorf("scramble equal to the goal was shown:\n%s", got)
	}
}

func TestPlay_EOFEndsRunningGame(t *testing.T) {
	var out bytes.Buffer
	lists := words.Lists{Pack: []string{"banana"}}
	if err := play(context.Background(), strings.NewReader(""), &out, lists, 1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "game over: 0 guessed, 0 skipped") {
		t.Errorf("expected summary on EOF:\n%s", out.String())
	}
}

func TestPlay_RestartAfterEnd(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader(":end\n:start\n:quit\n")
	lists := words.Lists{Pack: []string{"cherry"}}
	if err := play(context.Background(), in, &out, lists, 3); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "game over"); n != 2 {
		t.Errorf("expected two summaries, got %d:\n%s", n, out.String())
	}
}

func TestPlay_EmptyPackStaysInPreGame(t *testing.T) {
	var out bytes.Buffer
	if err := play(context.Background(), strings.NewReader(":start\n"), &out, words.Lists{}, 1); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "unscramble:") {
		t.Errorf("game started without words:\n%s", out.String())
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	wordsPath := writeFile(t, dir, "animals.txt", "# animals\nOtter\n\nbadger\n")
	bannedPath := writeFile(t, dir, "banned.json", `["xx"," yy "]`)
	dbPath := filepath.Join(dir, "words.db")

	var out bytes.Buffer
	app := &App{stdout: &out, cfg: config.Config{LogLevel: "error"}}
	root := app.Root()
	root.SetArgs([]string{"import", "--db", dbPath, "--pack", "animals", "--banned", bannedPath, wordsPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out.String(), `imported 2 words into pack "animals"`) {
		t.Errorf("unexpected output: %s", out.String())
	}

	db, err := words.OpenDB(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	pack, err := words.LoadPack(context.Background(), db, "animals")
	if err != nil {
		t.Fatal(err)
	}
	if len(pack) != 2 || pack[0] != "Otter" || pack[1] != "badger" {
		t.Errorf("pack = %v", pack)
	}
	banned, err := words.LoadBanned(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	if len(banned) != 2 || banned[0] != "xx" || banned[1] != "yy" {
		t.Errorf("banned = %v", banned)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	wordsPath := writeFile(t, dir, "empty.txt", "# nothing\n\n")
	opts := &importOptions{db: filepath.Join(dir, "words.db"), pack: "default"}
	if _, err := importWords(context.Background(), opts, wordsPath); !errors.Is(err, words.ErrEmptyPack) {
		t.Errorf("expected ErrEmptyPack, got %v", err)
	}
}

func TestImport_RequiresDB(t *testing.T) {
	dir := t.TempDir()
	wordsPath := writeFile(t, dir, "w.txt", "apple\n")
	app := &App{stdout: &bytes.Buffer{}, cfg: config.Config{LogLevel: "error"}}
	root := app.Root()
	root.SetArgs([]string{"import", wordsPath})
	if err := root.Execute(); err == nil {
		t.Error("expected error without --db")
	}
}

func TestPlay_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- play(ctx, pr, &out, words.Lists{Pack: []string{"apple"}}, 1)
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("play: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("play did not return after cancel")
	}
	if !strings.Contains(out.String(), "game over: 0 guessed, 0 skipped") {
		t.Errorf("expected summary on cancel:\n%s", out.String())
	}
}
