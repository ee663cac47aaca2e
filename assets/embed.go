// Package assets embeds the default word pack and banned-substring list so the
// server can run without any configured files.
package assets

import "embed"

//go:embed words.txt banned.json
var FS embed.FS

// Words returns the embedded newline-delimited word pack.
func Words() ([]byte, error) {
	return FS.ReadFile("words.txt")
}

// Banned returns the embedded banned list (a JSON array of strings).
func Banned() ([]byte, error) {
	return FS.ReadFile("banned.json")
}
