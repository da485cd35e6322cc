// internal/stats/players.go
//
// Player accounts and win/streak counters.
//
//   - Usernames are 3–24 chars of letters, digits and underscore, unique
//     case-insensitively.
//   - Passwords are bcrypt hashed.
//   - Record bumps games_played, wins, streak and best_streak in one transaction.

package stats

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordgrid/internal/game"
)

var (
	ErrUsernameTaken   = errors.New("username taken")
	ErrInvalidUsername = errors.New("username must be 3-24 letters, numbers or underscore")
	ErrInvalidPassword = errors.New("password must be 8-100 chars")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrNoPlayer        = errors.New("player not found")
)

const recordTimeout = 5 * time.Second

// Player mirrors a players row.
type Player struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
	BestStreak   int       `json:"bestStreak"`
}

// Store wraps the stats database.
type Store struct {
	db *sql.DB
}

// Open opens the database at dsn and applies migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// CreatePlayer validates input, hashes the password and inserts a player.
func (s *Store) CreatePlayer(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, password); err != nil {
		return nil, err
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM players WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Truncate(time.Second)
	p := &Player{ID: genID(), Username: username, PasswordHash: string(h), CreatedAt: now}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Username, p.PasswordHash, now.Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return p, nil
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*Player, error) {
	p, err := s.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return p, nil
}

// FindByUsername loads a player by case-insensitive username.
func (s *Store) FindByUsername(ctx context.Context, username string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak, best_streak
	                                  FROM players WHERE lower(username)=lower(?)`, username)
	return scanPlayer(row)
}

// FindByID loads a player by ID.
func (s *Store) FindByID(ctx context.Context, id string) (*Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak, best_streak
	                                  FROM players WHERE id=?`, id)
	return scanPlayer(row)
}

// Record counts one finished game for the player and returns the new streak.
func (s *Store) Record(ctx context.Context, playerID string, won bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak, best int
	err = tx.QueryRowContext(ctx, `SELECT games_played, wins, streak, best_streak FROM players WHERE id=?`, playerID).
		Scan(&gp, &wins, &streak, &best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoPlayer
	}
	if err != nil {
		return 0, err
	}

	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	best = max(best, streak)

	if _, err := tx.ExecContext(ctx, `UPDATE players SET games_played=?, wins=?, streak=?, best_streak=? WHERE id=?`,
		gp, wins, streak, best, playerID); err != nil {
		return 0, err
	}
	return streak, tx.Commit()
}

// Tracker adapts the store to game.StreakTracker for one player. Games
// outlive the request that created them, so each Record gets its own timeout.
func (s *Store) Tracker(playerID string) game.StreakTracker {
	return tracker{s: s, id: playerID}
}

type tracker struct {
	s  *Store
	id string
}

func (t tracker) Record(won bool) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	return t.s.Record(ctx, t.id, won)
}

// EnsureLocalPlayer returns the player with the given name, creating it with
// an unusable password when missing. Used by the terminal client.
func (s *Store) EnsureLocalPlayer(ctx context.Context, username string) (*Player, error) {
	if p, err := s.FindByUsername(ctx, username); err == nil {
		return p, nil
	} else if !errors.Is(err, ErrNoPlayer) {
		return nil, err
	}
	return s.CreatePlayer(ctx, username, genID())
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var created string
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created, &p.GamesPlayed, &p.Wins, &p.Streak, &p.BestStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPlayer
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return ErrInvalidUsername
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrInvalidUsername
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return ErrInvalidPassword
	}
	return nil
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
