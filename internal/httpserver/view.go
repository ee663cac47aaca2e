package httpserver

import "github.com/robalobadob/unscramble/internal/game"

// stateView is what clients see of a game state. The current round's goal is
// never included; finished rounds show theirs.
type stateView struct {
	Phase          game.Phase   `json:"phase"`
	Ready          bool         `json:"ready"` // a non-empty word pack is loaded
	ScrambledWord  string       `json:"scrambledWord,omitempty"`
	Guess          string       `json:"guess"`
	WordsGuessed   int          `json:"wordsGuessed"`
	WordsSkipped   int          `json:"wordsSkipped"`
	FinishedRounds []game.Round `json:"finishedRounds"`
}

func viewOf(s game.State) stateView {
	v := stateView{
		Phase:          s.Phase(),
		Ready:          len(s.Data().WordPack) > 0,
		FinishedRounds: []game.Round{},
	}
	switch st := s.(type) {
	case game.InGame:
		v.ScrambledWord = st.CurrentRound.ScrambledWord
		v.Guess = st.Guess
		v.WordsGuessed = st.WordsGuessed
		v.WordsSkipped = st.WordsSkipped
		v.FinishedRounds = append(v.FinishedRounds, st.FinishedRounds...)
	case game.PostGame:
		v.WordsGuessed = st.WordsGuessed
		v.WordsSkipped = st.WordsSkipped
		v.FinishedRounds = append(v.FinishedRounds, st.FinishedRounds...)
	}
	return v
}
