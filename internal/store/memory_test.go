package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/unscramble/internal/game"
)

func newTestStore(now *time.Time) *memory {
	return &memory{
		sessions: make(map[string]*Session),
		now:      func() time.Time { return *now },
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s, err := st.Create(ctx, Options{Seed: 42})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == "" || s.Seed != 42 {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.State().Phase() != game.PhasePreGame {
		t.Errorf("new session phase = %s", s.State().Phase())
	}

	got, err := st.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("get: %v %v", got, err)
	}
	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_ZeroSeedPicksOne(t *testing.T) {
	s, err := NewMemoryStore().Create(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Seed == 0 {
		t.Error("expected a non-zero seed")
	}
}

func TestDispatch_AppliesInOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, _ := st.Create(ctx, Options{Seed: 1})

	state, err := st.Dispatch(ctx, s.ID,
		game.LoadWordPack{Words: []string{"apple"}},
		game.StartGame{},
		game.UpdateGuess{Text: "APPLE"},
	)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	in, ok := state.(game.InGame)
	if !ok {
		t.Fatalf("expected InGame, got %T", state)
	}
	if in.WordsGuessed != 1 {
		t.Errorf("wordsGuessed = %d", in.WordsGuessed)
	}
	if s.State().Phase() != game.PhaseInGame {
		t.Error("session state not updated")
	}
}

func TestDispatch_UnknownSession(t *testing.T) {
	if _, err := NewMemoryStore().Dispatch(context.Background(), "nope", game.StartGame{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDispatch_SameSeedSameWords(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	pack := game.LoadWordPack{Words: []string{"apple", "banana", "cherry", "grape", "lemon"}}

	play := func() []game.Round {
		s, _ := st.Create(ctx, Options{Seed: 7, Daily: true})
		st.Dispatch(ctx, s.ID, pack, game.StartGame{}, game.SkipWord{}, game.SkipWord{})
		state, _ := st.Dispatch(ctx, s.ID, game.EndGame{})
		return state.(game.PostGame).FinishedRounds
	}
	a, b := play(), play()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("round %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDispatch_ConcurrentCallersKeepInvariant(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, _ := st.Create(ctx, Options{Seed: 3})
	st.Dispatch(ctx, s.ID, game.LoadWordPack{Words: []string{"apple", "banana"}}, game.StartGame{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				st.Dispatch(ctx, s.ID, game.SkipWord{})
			}
		}()
	}
	wg.Wait()

	in := s.State().(game.InGame)
	if in.WordsSkipped != 200 || len(in.FinishedRounds) != 200 {
		t.Errorf("skipped=%d history=%d, want 200/200", in.WordsSkipped, len(in.FinishedRounds))
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := newTestStore(&now)

	old, _ := st.Create(ctx, Options{Seed: 1})
	now = now.Add(30 * time.Minute)
	fresh, _ := st.Create(ctx, Options{Seed: 2})
	now = now.Add(45 * time.Minute)

	if n := st.Sweep(time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := st.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Error("old session should be gone")
	}
	if _, err := st.Get(ctx, fresh.ID); err != nil {
		t.Error("fresh session should survive")
	}
	if st.Len() != 1 {
		t.Errorf("len = %d", st.Len())
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s, _ := st.Create(ctx, Options{Seed: 1})
	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("len = %d", st.Len())
	}
}

func TestSweep_ReadsAndTouchesKeepSessionAlive(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st := newTestStore(&now)

	s, _ := st.Create(ctx, Options{Seed: 1})
	now = now.Add(50 * time.Minute)
	if _, err := st.Get(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	now = now.Add(50 * time.Minute)
	if err := st.Touch(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	now = now.Add(50 * time.Minute)

	if n := st.Sweep(2 * time.Hour); n != 0 {
		t.Fatalf("swept %d active session(s)", n)
	}
	now = now.Add(2 * time.Hour)
	if n := st.Sweep(2 * time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1 once idle", n)
	}
	if err := st.Touch(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("touch after eviction: %v", err)
	}
}
