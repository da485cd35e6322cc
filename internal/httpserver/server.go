// internal/httpserver/server.go
//
// HTTP server wiring for wordgrid.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/categories".
//   - Game endpoints (optional auth): POST /game/new, GET /game/{id},
//     POST /game/{id}/key, POST /game/{id}/delete.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Auth + stats endpoints: /auth/*, /stats/me (need a stats database).
//
// Each request maps to exactly one controller transition; the session mutex
// keeps taps on the same game in delivery order.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/stats"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Server bundles router, session store, word bank and optional stats DB.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	bank  *words.Bank
	stats *stats.Store // nil disables accounts and streaks
	daily *dailyServer
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, bank *words.Bank, db *stats.Store) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, bank: bank, stats: db, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordgrid","endpoints":["/health","/categories","POST /game/new","POST /game/{id}/key","POST /game/{id}/delete","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/categories", s.handleCategories)

	// Game endpoints, OPTIONAL AUTH (guests can play, players get streaks)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleBoard)
		r.Post("/game/{id}/key", s.handleKey)
		r.Post("/game/{id}/delete", s.handleDelete)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Category string `json:"category"` // general | movie | music; empty = general
	Answer   string `json:"answer"`   // fixed answer, only with ALLOW_FIXED_ANSWER
}

type keyReq struct {
	Letter string `json:"letter"`
}

// boardRes is the full board snapshot returned by every game endpoint.
type boardRes struct {
	GameID    string     `json:"gameId"`
	Category  string     `json:"category"`
	Daily     string     `json:"daily,omitempty"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Guesses   [][]string `json:"guesses"`  // "" for empty cells
	Verdicts  [][]string `json:"verdicts"` // unknown | absent | present | correct
	State     string     `json:"state"`    // playing | won | lost
	Attempts  int        `json:"attempts"`
	ElapsedMs int64      `json:"elapsedMs"`
	Answer    string     `json:"answer,omitempty"` // only once finished
	Streak    int        `json:"streak,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	out := map[string]int{}
	for c, n := range s.bank.Stats() {
		out[string(c)] = n
	}
	_ = json.NewEncoder(w).Encode(out)
}

// newController builds a controller with the server's defaults. Games with
// a fixed answer never count towards a player's streak.
func (s *Server) newController(opts game.Options, playerID string) *game.Controller {
	opts.Words = s.bank
	opts.Rows = s.cfg.Rows
	opts.StrictScoring = s.cfg.StrictScoring
	opts.Clock = s.now
	if playerID != "" && s.stats != nil && opts.Secret == "" {
		opts.Streak = s.stats.Tracker(playerID)
	}
	return game.NewController(opts)
}

// handleNewGame starts a game and stores its session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	cat, err := words.ParseCategory(req.Category)
	if err != nil {
		http.Error(w, `{"error":"invalid_category"}`, http.StatusBadRequest)
		return
	}
	if req.Answer != "" && !s.cfg.AllowFixed {
		http.Error(w, `{"error":"fixed_answer_disabled"}`, http.StatusForbidden)
		return
	}
	playerID := playerIDFrom(r)
	g := s.newController(game.Options{Category: cat, Secret: req.Answer}, playerID)
	if err := g.Start(); err != nil {
		if errors.Is(err, words.ErrInvalidWord) {
			http.Error(w, `{"error":"invalid_answer"}`, http.StatusBadRequest)
			return
		}
		log.Warn().Err(err).Msg("start game")
		http.Error(w, `{"error":"start_failed"}`, http.StatusBadRequest)
		return
	}

	sess := store.NewSession(g, playerID)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", sess.ID).Str("category", string(cat)).Bool("player", playerID != "").Msg("game started")
	s.writeBoard(w, sess)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeBoard(w, sess)
}

// handleKey applies one letter tap.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	letters := []rune(req.Letter)
	if len(letters) != 1 {
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	}
	s.tap(w, r, func(g *game.Controller) error { return g.OnKeyTap(letters[0]) })
}

// handleDelete removes the last letter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.tap(w, r, (*game.Controller).OnDeleteTap)
}

func (s *Server) tap(w http.ResponseWriter, r *http.Request, fn func(*game.Controller) error) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	err := sess.Do(fn)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrStreakRecord):
		// the game finished; only the counter update failed
		log.Warn().Err(err).Str("gameId", sess.ID).Msg("streak not recorded")
	case errors.Is(err, game.ErrInvalidLetter):
		http.Error(w, `{"error":"invalid_letter"}`, http.StatusBadRequest)
		return
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotStarted):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	default:
		log.Error().Err(err).Str("gameId", sess.ID).Msg("tap")
		http.Error(w, `{"error":"tap_failed"}`, http.StatusInternalServerError)
		return
	}
	s.writeBoard(w, sess)
}

// session loads the game named in the URL. Games owned by a player are only
// visible to that player.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || (sess.PlayerID != "" && sess.PlayerID != playerIDFrom(r)) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (s *Server) writeBoard(w http.ResponseWriter, sess *store.Session) {
	var res boardRes
	_ = sess.Do(func(g *game.Controller) error {
		res = snapshot(g)
		return nil
	})
	res.GameID = sess.ID
	res.Daily = sess.DailyKey
	_ = json.NewEncoder(w).Encode(res)
}

// snapshot renders the controller for JSON. Caller holds the session lock.
func snapshot(g *game.Controller) boardRes {
	res := boardRes{
		Category:  string(g.Category()),
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		State:     g.State().String(),
		Attempts:  g.Attempts(),
		ElapsedMs: g.Elapsed().Milliseconds(),
	}
	for i, row := range g.CurrentGuesses() {
		cells := make([]string, len(row))
		for j, ch := range row {
			if ch != 0 {
				cells[j] = string(ch)
			}
		}
		verdicts := make([]string, len(row))
		for j, v := range g.RowVerdicts(i) {
			verdicts[j] = v.String()
		}
		res.Guesses = append(res.Guesses, cells)
		res.Verdicts = append(res.Verdicts, verdicts)
	}
	if g.State().Terminal() {
		res.Answer = g.Secret()
		res.Streak = g.Result().Streak
	}
	return res
}
