package game

import "strings"

// Normalize lowercases text, trims it, and collapses every run of internal
// whitespace to a single space. Goals, guesses, pack words and banned entries
// all pass through here before they are compared.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// normalizeList normalizes every entry and drops the ones that end up blank.
// The result is never nil, so a loaded-but-empty list stays distinguishable
// from an absent one.
func normalizeList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if n := Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}
