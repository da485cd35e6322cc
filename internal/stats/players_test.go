package stats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/robalobadob/wordgrid/internal/game"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "stats.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = s.Close()
}

func TestCreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	p, err := s.CreatePlayer(ctx, "  ethan_l ", "password123")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Username != "ethan_l" || p.PasswordHash == "password123" {
		t.Fatalf("player = %+v", p)
	}
	if _, err := s.CreatePlayer(ctx, "ETHAN_L", "password123"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	got, err := s.Authenticate(ctx, "Ethan_L", "password123")
	if err != nil || got.ID != p.ID {
		t.Fatalf("authenticate: %v", err)
	}
	if _, err := s.Authenticate(ctx, "ethan_l", "wrong-password"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "password123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestCreatePlayer_Validation(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	tests := []struct {
		name, user, pass string
		want             error
	}{
		{"short name", "ab", "password123", ErrInvalidUsername},
		{"bad chars", "a.b.c", "password123", ErrInvalidUsername},
		{"short password", "player", "short", ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreatePlayer(ctx, tt.user, tt.pass); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRecord_StreakCounters(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	p, err := s.CreatePlayer(ctx, "streaker", "password123")
	if err != nil {
		t.Fatal(err)
	}

	var tr game.StreakTracker = s.Tracker(p.ID)
	for i, want := range []int{1, 2, 0, 1} {
		got, err := tr.Record(i != 2)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("record %d: streak = %d, want %d", i, got, want)
		}
	}

	p, err = s.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if p.GamesPlayed != 4 || p.Wins != 3 || p.Streak != 1 || p.BestStreak != 2 {
		t.Fatalf("counters = %+v", p)
	}

	if _, err := s.Record(ctx, "missing", true); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("expected ErrNoPlayer, got %v", err)
	}
}

func TestEnsureLocalPlayer(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	a, err := s.EnsureLocalPlayer(ctx, "local")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.EnsureLocalPlayer(ctx, "local")
	if err != nil || a.ID != b.ID {
		t.Fatalf("second ensure: %v (%s vs %s)", err, a.ID, b.ID)
	}
}

func TestControllerWithTracker(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	p, _ := s.CreatePlayer(ctx, "player1", "password123")

	c := game.NewController(game.Options{Secret: "later", Streak: s.Tracker(p.ID)})
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	for _, r := range "later" {
		if err := c.OnKeyTap(r); err != nil {
			t.Fatal(err)
		}
	}
	if c.Result().Streak != 1 {
		t.Fatalf("streak = %d", c.Result().Streak)
	}
}
