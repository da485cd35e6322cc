package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/stats"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func testServer(t *testing.T, withStats bool) *Server {
	t.Helper()
	bank, err := words.NewBank(5, map[words.Category][]string{
		words.General: {"later", "brave", "crane"},
		words.Movie:   {"alien"},
		words.Music:   {"happy"},
	})
	if err != nil {
		t.Fatal(err)
	}
	var db *stats.Store
	if withStats {
		db, err = stats.Open(filepath.Join(t.TempDir(), "stats.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = db.Close() })
	}
	cfg := config.Config{
		Rows:         6,
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		CookieName:   "wordgrid_token",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "salt",
		AllowFixed:   true,
	}
	return New(cfg, store.NewMemoryStore(), bank, db)
}

func do(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBoard(t *testing.T, rec *httptest.ResponseRecorder) boardRes {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var b boardRes
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return b
}

func tapWord(t *testing.T, s *Server, id, word, token string) boardRes {
	t.Helper()
	var b boardRes
	for _, r := range word {
		b = decodeBoard(t, do(t, s, http.MethodPost, "/game/"+id+"/key", keyReq{Letter: string(r)}, token))
	}
	return b
}

func TestHealthAndCategories(t *testing.T) {
	s := testServer(t, false)
	if rec := do(t, s, http.MethodGet, "/health", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	rec := do(t, s, http.MethodGet, "/categories", nil, "")
	var cats map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&cats); err != nil {
		t.Fatal(err)
	}
	if cats["general"] != 3 || cats["movie"] != 1 {
		t.Fatalf("categories = %v", cats)
	}
}

func TestGameFlow_Win(t *testing.T) {
	s := testServer(t, false)
	b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "brave"}, ""))
	if b.Rows != 6 || b.Cols != 5 || b.State != "playing" || b.Answer != "" {
		t.Fatalf("new board = %+v", b)
	}

	b = tapWord(t, s, b.GameID, "abcde", "")
	want := []string{"present", "present", "absent", "absent", "correct"}
	for i, v := range want {
		if b.Verdicts[0][i] != v {
			t.Fatalf("verdicts = %v", b.Verdicts[0])
		}
	}

	b = tapWord(t, s, b.GameID, "brave", "")
	if b.State != "won" || b.Attempts != 2 || b.Answer != "brave" {
		t.Fatalf("board = %+v", b)
	}

	rec := do(t, s, http.MethodPost, "/game/"+b.GameID+"/key", keyReq{Letter: "a"}, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("tap after win = %d", rec.Code)
	}
}

func TestGameFlow_DeleteAndValidation(t *testing.T) {
	s := testServer(t, false)
	b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "later"}, ""))

	b = tapWord(t, s, b.GameID, "cr", "")
	b = decodeBoard(t, do(t, s, http.MethodPost, "/game/"+b.GameID+"/delete", nil, ""))
	if b.Guesses[0][0] != "c" || b.Guesses[0][1] != "" {
		t.Fatalf("after delete = %v", b.Guesses[0])
	}

	for _, bad := range []string{"", "ab", "1"} {
		rec := do(t, s, http.MethodPost, "/game/"+b.GameID+"/key", keyReq{Letter: bad}, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("letter %q = %d", bad, rec.Code)
		}
	}

	if rec := do(t, s, http.MethodGet, "/game/nope", nil, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing game = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/game/new", newGameReq{Category: "sports"}, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad category = %d", rec.Code)
	}
}

func TestGameFlow_Loss(t *testing.T) {
	s := testServer(t, false)
	b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "later"}, ""))
	for i := 0; i < 6; i++ {
		b = tapWord(t, s, b.GameID, "words", "")
	}
	if b.State != "lost" || b.Attempts != 6 || b.Answer != "later" {
		t.Fatalf("board = %+v", b)
	}
}

func TestAccountsDisabledWithoutStats(t *testing.T) {
	s := testServer(t, false)
	rec := do(t, s, http.MethodPost, "/auth/signup", credentialsReq{Username: "player1", Password: "password123"}, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("signup = %d", rec.Code)
	}
}

func TestAuthAndStreak(t *testing.T) {
	s := testServer(t, true)

	rec := do(t, s, http.MethodPost, "/auth/signup", credentialsReq{Username: "player1", Password: "password123"}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("signup = %d %s", rec.Code, rec.Body.String())
	}
	var auth authRes
	_ = json.NewDecoder(rec.Body).Decode(&auth)
	if auth.Token == "" {
		t.Fatal("no token")
	}

	if rec := do(t, s, http.MethodPost, "/auth/signup", credentialsReq{Username: "PLAYER1", Password: "password123"}, ""); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/auth/login", credentialsReq{Username: "player1", Password: "nope-nope"}, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/stats/me", nil, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stats without token = %d", rec.Code)
	}

	// movie holds a single word, so the pick is known without fixing the answer
	for i := 1; i <= 2; i++ {
		b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", newGameReq{Category: "movie"}, auth.Token))
		b = tapWord(t, s, b.GameID, "alien", auth.Token)
		if b.Streak != i {
			t.Fatalf("game %d streak = %d", i, b.Streak)
		}
	}

	rec = do(t, s, http.MethodGet, "/stats/me", nil, auth.Token)
	var p stats.Player
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.GamesPlayed != 2 || p.Wins != 2 || p.BestStreak != 2 {
		t.Fatalf("stats = %+v", p)
	}

	// a player's game is hidden from guests
	b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", nil, auth.Token))
	if rec := do(t, s, http.MethodGet, "/game/"+b.GameID, nil, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("guest sees player game: %d", rec.Code)
	}
}

func TestNewGame_AnswerMustBeFiveLetters(t *testing.T) {
	s := testServer(t, false)
	for _, answer := range []string{"ab", "avatar", strings.Repeat("a", 10000)} {
		rec := do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: answer}, "")
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid_answer") {
			t.Fatalf("answer of %d letters = %d %s", len(answer), rec.Code, rec.Body.String())
		}
	}
}

func TestNewGame_FixedAnswerDisabledByDefault(t *testing.T) {
	s := testServer(t, false)
	s.cfg.AllowFixed = false
	rec := do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "later"}, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("fixed answer = %d", rec.Code)
	}
	decodeBoard(t, do(t, s, http.MethodPost, "/game/new", nil, ""))
}

func TestFixedAnswerWinDoesNotCount(t *testing.T) {
	s := testServer(t, true)
	rec := do(t, s, http.MethodPost, "/auth/signup", credentialsReq{Username: "player2", Password: "password123"}, "")
	var auth authRes
	if err := json.NewDecoder(rec.Body).Decode(&auth); err != nil || auth.Token == "" {
		t.Fatalf("signup: %v %s", err, rec.Body.String())
	}

	b := decodeBoard(t, do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "hello"}, auth.Token))
	b = tapWord(t, s, b.GameID, "hello", auth.Token)
	if b.State != "won" || b.Streak != 0 {
		t.Fatalf("board = %+v", b)
	}

	var p stats.Player
	if err := json.NewDecoder(do(t, s, http.MethodGet, "/stats/me", nil, auth.Token).Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.GamesPlayed != 0 || p.Wins != 0 || p.Streak != 0 {
		t.Fatalf("fixed-answer game counted: %+v", p)
	}
}

func TestDailyNew_ForgetsPreviousDays(t *testing.T) {
	s := testServer(t, false)
	day := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }
	yesterday := decodeBoard(t, do(t, s, http.MethodPost, "/daily/new", nil, ""))
	decodeBoard(t, do(t, s, http.MethodPost, "/daily/new", nil, ""))

	day = day.AddDate(0, 0, 1)
	decodeBoard(t, do(t, s, http.MethodPost, "/daily/new", nil, ""))

	s.daily.mu.Lock()
	n := len(s.daily.sessions)
	for k := range s.daily.sessions {
		if !strings.HasSuffix(k, "|2026-10-18") {
			t.Errorf("stale entry %q", k)
		}
	}
	s.daily.mu.Unlock()
	if n != 1 {
		t.Fatalf("entries = %d, want 1", n)
	}

	// yesterday's game is still reachable by ID
	decodeBoard(t, do(t, s, http.MethodGet, "/game/"+yesterday.GameID, nil, ""))
}

func TestDailyNew_ReusesSessionAndWord(t *testing.T) {
	s := testServer(t, false)
	day := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	rec := do(t, s, http.MethodPost, "/daily/new", nil, "")
	first := decodeBoard(t, rec)
	if first.Daily != "2026-10-17" {
		t.Fatalf("daily key = %q", first.Daily)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no anon cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/daily/new", nil)
	req.AddCookie(cookies[0])
	again := httptest.NewRecorder()
	s.Router().ServeHTTP(again, req)
	if second := decodeBoard(t, again); second.GameID != first.GameID {
		t.Fatalf("second call started a new game: %s vs %s", second.GameID, first.GameID)
	}

	// a different guest gets a different session but the same word
	other := decodeBoard(t, do(t, s, http.MethodPost, "/daily/new", nil, ""))
	if other.GameID == first.GameID {
		t.Fatal("guests share a session")
	}
	list := []string{"later", "brave", "crane"}
	want := list[daily.Source{Date: day, Salt: "salt"}.IntN(len(list))]
	b := tapWord(t, s, other.GameID, want, "")
	if b.State != "won" {
		t.Fatalf("daily word %q did not win: %+v", want, b)
	}
}
