// internal/config/config.go
//
// Process configuration, read from the environment after an optional .env file.
//
// Environment variables:
//   PORT                 HTTP listen port (default 5175)
//   LOG_LEVEL            zerolog level (default info)
//   CLIENT_ORIGIN        allowed CORS origin (default http://localhost:5173)
//   WORDS_FILE           newline-delimited word pack (default: embedded)
//   BANNED_WORDS_FILE    JSON array of banned substrings (default: embedded)
//   WORDS_DB             SQLite word database; takes precedence over the files
//   WORD_PACK            pack name inside WORDS_DB (default "default")
//   SESSION_SECRET       HS256 key for session tokens
//   SESSION_TTL_MINUTES  idle session eviction (default 120)
//   DAILY_SALT           salt for the daily seed

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every setting the commands read.
type Config struct {
	Port            string
	LogLevel        string
	ClientOrigin    string
	WordsFile       string
	BannedWordsFile string
	WordsDB         string
	WordPack        string
	SessionSecret   string
	SessionTTL      time.Duration
	DailySalt       string
}

// DefaultPack is the pack name used when WORD_PACK is unset.
const DefaultPack = "default"

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	ttl := 120
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}

	return Config{
		Port:            getEnv("PORT", "5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		WordsFile:       os.Getenv("WORDS_FILE"),
		BannedWordsFile: os.Getenv("BANNED_WORDS_FILE"),
		WordsDB:         os.Getenv("WORDS_DB"),
		WordPack:        getEnv("WORD_PACK", DefaultPack),
		SessionSecret:   getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionTTL:      time.Duration(ttl) * time.Minute,
		DailySalt:       getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// ApplyLogLevel sets the global zerolog level; unknown names leave it alone.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
