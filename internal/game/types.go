// internal/game/types.go
//
// Core type definitions for the unscramble game engine.
// Defines:
//   - Phase:  which mode the session is in (pre-game / in-game / post-game).
//   - State:  sealed sum type over PreGame, InGame and PostGame.
//   - Round:  one word-guessing attempt.
//   - Action: sealed sum type of everything the reducer accepts.
//
// States are values. The reducer never mutates a State it was handed; it returns
// a new one (or the very same value when the action is ignored).

package game

// Phase names the active variant of State.
type Phase string

const (
	PhasePreGame  Phase = "pre-game"
	PhaseInGame   Phase = "in-game"
	PhasePostGame Phase = "post-game"
)

// Lists holds the externally loaded data shared by every phase.
// A nil slice means "not loaded yet".
type Lists struct {
	WordPack    []string // normalized candidate words
	BannedWords []string // normalized disallowed substrings
}

// State is implemented by PreGame, InGame and PostGame only.
type State interface {
	Phase() Phase
	Data() Lists
	isState()
}

// PreGame waits for the word pack and/or the player.
type PreGame struct {
	Lists
}

// InGame is an active session.
type InGame struct {
	Lists
	CurrentRound   Round
	FinishedRounds []Round
	Guess          string // raw player input, kept for display
	WordsGuessed   int
	WordsSkipped   int
}

// PostGame is the read-only summary of an ended session.
type PostGame struct {
	Lists
	FinishedRounds []Round
	WordsGuessed   int
	WordsSkipped   int
}

func (PreGame) Phase() Phase  { return PhasePreGame }
func (InGame) Phase() Phase   { return PhaseInGame }
func (PostGame) Phase() Phase { return PhasePostGame }

func (s PreGame) Data() Lists  { return s.Lists }
func (s InGame) Data() Lists   { return s.Lists }
func (s PostGame) Data() Lists { return s.Lists }

func (PreGame) isState()  {}
func (InGame) isState()   {}
func (PostGame) isState() {}

// Round is one word-guessing attempt.
type Round struct {
	Goal          string `json:"goal"`          // normalized target word
	ScrambledWord string `json:"scrambledWord"` // permutation of Goal shown to the player
	WasGuessed    bool   `json:"wasGuessed"`    // finalized when archived
}

// Action is implemented by the action types below only.
type Action interface {
	isAction()
}

// LoadWordPack delivers the raw word list. Accepted in PreGame only.
type LoadWordPack struct{ Words []string }

// LoadBannedWords delivers the raw banned-substring list. Accepted in any phase.
type LoadBannedWords struct{ Words []string }

// StartGame begins a fresh session from PreGame or PostGame.
type StartGame struct{}

// EndGame archives the current round and moves to PostGame.
type EndGame struct{}

// SkipWord gives up on the current round.
type SkipWord struct{}

// UpdateGuess reports the player's current input.
type UpdateGuess struct{ Text string }

func (LoadWordPack) isAction()    {}
func (LoadBannedWords) isAction() {}
func (StartGame) isAction()       {}
func (EndGame) isAction()         {}
func (SkipWord) isAction()        {}
func (UpdateGuess) isAction()     {}
