// internal/game/round.go
//
// Round generation: pick a word, scramble it.
//
// Scrambling is a Fisher–Yates shuffle over runes. A candidate is rejected when
// it equals the canonical word or contains a banned substring; after
// MaxScrambleAttempts rejections the canonical word itself is used as the
// scrambled form.

package game

import "strings"

// MaxScrambleAttempts bounds the shuffle/retry loop in Scramble.
const MaxScrambleAttempts = 10

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform int in [0, n). n > 0.
	Intn(n int) int
}

// NewRound picks a uniformly random word from pack and scrambles it.
// pack must be non-empty; the reducer never calls this otherwise.
func NewRound(rng Rand, pack, banned []string) Round {
	if len(pack) == 0 {
		panic("game: NewRound called with an empty word pack")
	}
	goal := Normalize(pack[rng.Intn(len(pack))])
	return Round{
		Goal:          goal,
		ScrambledWord: Scramble(rng, goal, banned),
		WasGuessed:    false,
	}
}

// Scramble returns a permutation of word that differs from word and contains
// no entry of banned. Words shorter than two runes come back as-is, and so
// does any word for which no acceptable permutation turned up in time.
func Scramble(rng Rand, word string, banned []string) string {
	letters := []rune(word)
	if len(letters) < 2 {
		return word
	}
	for attempt := 0; attempt < MaxScrambleAttempts; attempt++ {
		shuffle(rng, letters)
		candidate := string(letters)
		if candidate != word && !containsBanned(candidate, banned) {
			return candidate
		}
	}
	return word
}

// shuffle permutes letters in place (Fisher–Yates).
func shuffle(rng Rand, letters []rune) {
	for i := len(letters) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
}

func containsBanned(s string, banned []string) bool {
	for _, b := range banned {
		if b != "" && strings.Contains(s, b) {
			return true
		}
	}
	return false
}
