package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/unscramble/internal/daily"
	"github.com/robalobadob/unscramble/internal/game"
	"github.com/robalobadob/unscramble/internal/words"
)

type playOptions struct {
	seed  int64
	daily bool
}

func (a *App) newPlayCmd() *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play in the terminal.

Type a guess and press enter. Commands:
  :skip   skip the current word
  :end    end the session and show the summary
  :start  start a new session after one has ended
  :quit   leave`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := words.Load(cmd.Context(), a.cfg)
			if err != nil {
				return fmt.Errorf("failed to load word lists: %w", err)
			}
			seed := opts.seed
			switch {
			case opts.daily:
				seed = daily.Seed(time.Now(), a.cfg.DailySalt)
			case seed == 0:
				seed = time.Now().UnixNano()
			}
			return play(cmd.Context(), a.stdin, a.stdout, lists, seed)
		},
	}
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed (0 = from clock)")
	cmd.Flags().BoolVar(&opts.daily, "daily", false, "Use today's shared seed")
	return cmd
}

// play runs an interactive session over in/out until :quit, EOF or ctx is
// cancelled. Lines are read on a separate goroutine so cancellation does not
// wait for the next line.
func play(ctx context.Context, in io.Reader, out io.Writer, lists words.Lists, seed int64) error {
	r := game.NewReducer(rand.New(rand.NewSource(seed)))
	s := game.InitialState()
	s = r.Transition(s, game.LoadWordPack{Words: lists.Pack})
	s = r.Transition(s, game.LoadBannedWords{Words: lists.Banned})
	s = r.Transition(s, game.StartGame{})
	render(out, s)

	// Stops the reader goroutine once play returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return finish(out, r, s)
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return err
					}
				default:
				}
				return finish(out, r, s)
			}
			line = l
		}

		var a game.Action
		switch strings.TrimSpace(line) {
		case ":quit":
			return finish(out, r, s)
		case ":skip":
			a = game.SkipWord{}
		case ":end":
			a = game.EndGame{}
		case ":start":
			a = game.StartGame{}
		default:
			a = game.UpdateGuess{Text: line}
		}
		next := r.Transition(s, a)
		if g, ok := a.(game.UpdateGuess); ok {
			reportGuess(out, s, next, g)
		}
		s = next
		render(out, s)
	}
}

// finish ends a running session so the summary includes the open round.
func finish(out io.Writer, r *game.Reducer, s game.State) error {
	if s.Phase() == game.PhaseInGame {
		s = r.Transition(s, game.EndGame{})
		render(out, s)
	}
	return nil
}

func reportGuess(out io.Writer, before, after game.State, g game.UpdateGuess) {
	b, ok := before.(game.InGame)
	if !ok {
		return
	}
	if a, ok := after.(game.InGame); ok && a.WordsGuessed > b.WordsGuessed {
		fmt.Fprintf(out, "correct! it was %q\n", b.CurrentRound.Goal)
		return
	}
	fmt.Fprintf(out, "not quite: %q\n", g.Text)
}

func render(out io.Writer, s game.State) {
	switch st := s.(type) {
	case game.PreGame:
		fmt.Fprintln(out, "no words loaded")
	case game.InGame:
		fmt.Fprintf(out, "[%d guessed, %d skipped] unscramble: %s\n",
			st.WordsGuessed, st.WordsSkipped, strings.ToUpper(st.CurrentRound.ScrambledWord))
	case game.PostGame:
		fmt.Fprintf(out, "game over: %d guessed, %d skipped\n", st.WordsGuessed, st.WordsSkipped)
		for i, rd := range st.FinishedRounds {
			mark := "missed"
			if rd.WasGuessed {
				mark = "guessed"
			}
			fmt.Fprintf(out, "  %2d. %-20s %s\n", i+1, rd.Goal, mark)
		}
	}
}
