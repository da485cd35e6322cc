// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
//   - POST /daily/new: start (or resume) today's game. Everyone gets the same
//     general-category word for a UTC date, chosen by daily.Source.
//
// Play then continues through the normal /game/{id} endpoints. Each player
// (or guest, identified by an anonymous cookie) has one daily session per
// date; asking again returns the same game.

package httpserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

const anonCookieName = "wordgrid_anon"

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	mu       sync.Mutex        // guards sessions
	sessions map[string]string // owner|date → session ID
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	s.daily = &dailyServer{srv: s, sessions: make(map[string]string)}
	r.Post("/daily/new", s.daily.handleNew)
}

// ownerID returns the player ID when signed in, else a stable anonymous ID.
func (d *dailyServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	if id := playerIDFrom(r); id != "" {
		return id
	}
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return "anon:" + c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   d.srv.cfg.Production,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return "anon:" + id
}

// handleNew creates or reuses today's session for the caller.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.ownerID(w, r)
	src := daily.Source{Date: d.srv.now(), Salt: d.srv.cfg.DailySalt}
	key := owner + "|" + src.Key()

	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.sessions[key]; ok {
		if sess, err := d.srv.store.Get(r.Context(), id); err == nil {
			d.srv.writeBoard(w, sess)
			return
		}
	}

	d.forgetOtherDays(src.Key())

	playerID := playerIDFrom(r)
	g := d.srv.newController(game.Options{Category: words.General, Source: src}, playerID)
	if err := g.Start(); err != nil {
		log.Error().Err(err).Msg("start daily game")
		http.Error(w, `{"error":"start_failed"}`, http.StatusInternalServerError)
		return
	}
	sess := store.NewSession(g, playerID)
	sess.DailyKey = src.Key()
	if err := d.srv.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	d.sessions[key] = sess.ID
	log.Info().Str("gameId", sess.ID).Str("date", sess.DailyKey).Msg("daily game started")
	d.srv.writeBoard(w, sess)
}

// forgetOtherDays drops index entries for any date but today. The sessions
// themselves stay in the store so an unfinished game can still be played
// by ID. Caller holds d.mu.
func (d *dailyServer) forgetOtherDays(today string) {
	for k := range d.sessions {
		if !strings.HasSuffix(k, "|"+today) {
			delete(d.sessions, k)
		}
	}
}
