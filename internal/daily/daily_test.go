package daily

import (
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/words"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, loc) // 2026-03-01 22:00 UTC
	if got := DateKey(ts); got != "2026-03-01" {
		t.Fatalf("date key = %q", got)
	}
}

func TestSourceStablePerDay(t *testing.T) {
	at := func(ts time.Time) int { return Source{Date: ts, Salt: "salt"}.IntN(1000) }
	morning := time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)
	if at(morning) != at(evening) {
		t.Fatal("index changed within a day")
	}

	differs := false
	for d := 1; d <= 10; d++ {
		if at(morning.AddDate(0, 0, d)) != at(morning) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("index identical for ten consecutive days")
	}

	other := Source{Date: morning, Salt: "pepper"}
	if other.Key() != "2026-10-17" {
		t.Fatalf("key = %q", other.Key())
	}
	if (Source{Date: morning}).IntN(0) != 0 {
		t.Fatal("empty list must give index 0")
	}
	if n := (Source{Date: morning}).IntN(1); n != 0 {
		t.Fatalf("single-word list gave %d", n)
	}
}

func TestSourcePicksFromBank(t *testing.T) {
	bank, err := words.NewBank(5, map[words.Category][]string{
		words.General: {"alpha", "bravo", "delta", "gamma", "omega"},
	})
	if err != nil {
		t.Fatal(err)
	}
	src := Source{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Salt: "s"}
	a, err := bank.Pick(words.General, src)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := bank.Pick(words.General, src)
	if a != b {
		t.Fatalf("daily pick not deterministic: %q vs %q", a, b)
	}
	if src.Key() != "2026-01-01" {
		t.Fatalf("key = %q", src.Key())
	}
}
