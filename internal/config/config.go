// internal/config/config.go
//
// Process configuration from the environment (and an optional .env file).
//
// Keys and defaults:
//   PORT=5175                 HTTP listen port
//   LOG_LEVEL=info            zerolog level
//   DB_PATH=./data/wordgrid.db  SQLite stats database; "" disables stats
//   JWT_SECRET=dev_secret_change_me
//   JWT_EXPIRES_DAYS=14
//   COOKIE_NAME=wordgrid_token
//   CLIENT_ORIGIN=http://localhost:5173
//   DAILY_SALT=local_dev_salt
//   GRID_ROWS=6
//   STRICT_SCORING=false      duplicate-aware scoring
//   ALLOW_FIXED_ANSWER=false  accept {"answer"} on POST /game/new (local testing only)
//   NODE_ENV                  "production" enables Secure cookies

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is the resolved configuration.
type Config struct {
	Port          string
	LogLevel      string
	DBPath        string
	JWTSecret     string
	JWTExpiry     time.Duration
	CookieName    string
	ClientOrigin  string
	DailySalt     string
	Rows          int
	StrictScoring bool
	AllowFixed    bool
	Production    bool
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()
	dbPath, ok := os.LookupEnv("DB_PATH")
	if !ok {
		dbPath = "./data/wordgrid.db"
	}
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBPath:        dbPath,
		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiry:     time.Duration(getInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:    getEnv("COOKIE_NAME", "wordgrid_token"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		Rows:          getInt("GRID_ROWS", 6),
		StrictScoring: getBool("STRICT_SCORING", false),
		AllowFixed:    getBool("ALLOW_FIXED_ANSWER", false),
		Production:    os.Getenv("NODE_ENV") == "production",
	}
}

// ApplyLogLevel sets the global zerolog level; unknown levels are ignored.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", c.LogLevel).Msg("unknown LOG_LEVEL")
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
	}
	return def
}
