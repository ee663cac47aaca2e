// internal/game/reducer.go
//
// The game state machine.
// Responsibilities:
//   - Gate every action on the current phase; anything not valid for the
//     phase returns the input state unchanged.
//   - Generate rounds through the injected Rand.
//   - Keep counters and round history consistent. In InGame
//       WordsGuessed + WordsSkipped == len(FinishedRounds);
//     EndGame archives the open round without counting it.
//
// Transition table:
//   LoadWordPack     PreGame            set WordPack
//   LoadBannedWords  any                replace BannedWords
//   StartGame        PreGame, PostGame  fresh InGame (needs a non-empty pack)
//   EndGame          InGame             archive round, go to PostGame
//   SkipWord         InGame             archive round unguessed, next round
//   UpdateGuess      InGame             archive guessed round on match, else store guess

package game

// Reducer applies actions to states. It holds only the randomness source,
// so one Reducer must not be shared between goroutines unless rng is safe
// for concurrent use.
type Reducer struct {
	rng Rand
}

// NewReducer returns a Reducer drawing words and shuffles from rng.
func NewReducer(rng Rand) *Reducer {
	return &Reducer{rng: rng}
}

// InitialState is PreGame with neither list loaded.
func InitialState() State {
	return PreGame{}
}

// Transition returns the state that follows s after a.
func (r *Reducer) Transition(s State, a Action) State {
	switch a := a.(type) {
	case LoadWordPack:
		return r.loadWordPack(s, a)
	case LoadBannedWords:
		return r.loadBannedWords(s, a)
	case StartGame:
		return r.startGame(s)
	case EndGame:
		return r.endGame(s)
	case SkipWord:
		return r.skipWord(s)
	case UpdateGuess:
		return r.updateGuess(s, a)
	default:
		return s
	}
}

func (r *Reducer) loadWordPack(s State, a LoadWordPack) State {
	pre, ok := s.(PreGame)
	if !ok {
		return s
	}
	pre.WordPack = normalizeList(a.Words)
	return pre
}

func (r *Reducer) loadBannedWords(s State, a LoadBannedWords) State {
	banned := normalizeList(a.Words)
	switch st := s.(type) {
	case PreGame:
		st.BannedWords = banned
		return st
	case InGame:
		st.BannedWords = banned
		return st
	case PostGame:
		st.BannedWords = banned
		return st
	default:
		return s
	}
}

func (r *Reducer) startGame(s State) State {
	switch s.(type) {
	case PreGame, PostGame:
	default:
		return s
	}
	lists := s.Data()
	if len(lists.WordPack) == 0 {
		return s
	}
	return InGame{
		Lists:          lists,
		CurrentRound:   NewRound(r.rng, lists.WordPack, lists.BannedWords),
		FinishedRounds: []Round{},
	}
}

func (r *Reducer) endGame(s State) State {
	in, ok := s.(InGame)
	if !ok {
		return s
	}
	return PostGame{
		Lists:          in.Lists,
		FinishedRounds: archive(in.FinishedRounds, in.CurrentRound),
		WordsGuessed:   in.WordsGuessed,
		WordsSkipped:   in.WordsSkipped,
	}
}

func (r *Reducer) skipWord(s State) State {
	in, ok := s.(InGame)
	if !ok {
		return s
	}
	done := in.CurrentRound
	done.WasGuessed = false
	in.FinishedRounds = archive(in.FinishedRounds, done)
	in.WordsSkipped++
	in.CurrentRound = NewRound(r.rng, in.WordPack, in.BannedWords)
	in.Guess = ""
	return in
}

func (r *Reducer) updateGuess(s State, a UpdateGuess) State {
	in, ok := s.(InGame)
	if !ok {
		return s
	}
	if Normalize(a.Text) != in.CurrentRound.Goal {
		in.Guess = a.Text
		return in
	}
	done := in.CurrentRound
	done.WasGuessed = true
	in.FinishedRounds = archive(in.FinishedRounds, done)
	in.WordsGuessed++
	in.CurrentRound = NewRound(r.rng, in.WordPack, in.BannedWords)
	in.Guess = ""
	return in
}

// archive returns history with r appended, always in a fresh backing array
// so earlier states keep their own view of the history.
func archive(history []Round, r Round) []Round {
	out := make([]Round, len(history), len(history)+1)
	copy(out, history)
	return append(out, r)
}
