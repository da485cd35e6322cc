// internal/httpserver/auth.go
//
// Player accounts over HTTP.
//   - POST /auth/signup, /auth/login: bcrypt-checked credentials, HS256 JWT
//     returned in an HttpOnly cookie and in the body.
//   - POST /auth/logout: clears the cookie.
//   - GET /auth/me, /stats/me: require a valid token.
//
// Tokens are accepted from "Authorization: Bearer <token>" or the cookie.
// Without a stats database every route here answers 503.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/stats"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// authPlayer is placed into request context by the auth middleware.
type authPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxPlayerKey struct{}

// playerIDFrom returns the authenticated player's ID or "".
func playerIDFrom(r *http.Request) string {
	if p, _ := r.Context().Value(ctxPlayerKey{}).(*authPlayer); p != nil {
		return p.ID
	}
	return ""
}

// mountAuthRoutes registers /auth/* and /stats/me.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		me, _ := r.Context().Value(ctxPlayerKey{}).(*authPlayer)
		_ = json.NewEncoder(w).Encode(me)
	})

	s.r.With(s.requireAuth()).Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
		p, err := s.stats.FindByID(r.Context(), playerIDFrom(r))
		if err != nil {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	})
}

func (s *Server) statsEnabled(w http.ResponseWriter) bool {
	if s.stats == nil {
		http.Error(w, `{"error":"accounts_disabled"}`, http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleSignup creates a player, signs a JWT and sets the auth cookie.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !s.statsEnabled(w) {
		return
	}
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	p, err := s.stats.CreatePlayer(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, stats.ErrUsernameTaken):
		http.Error(w, `{"error":"username_taken"}`, http.StatusConflict)
		return
	case errors.Is(err, stats.ErrInvalidUsername), errors.Is(err, stats.ErrInvalidPassword):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Msg("create player")
		http.Error(w, `{"error":"signup_failed"}`, http.StatusInternalServerError)
		return
	}
	s.issueToken(w, p)
}

// handleLogin authenticates a player and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.statsEnabled(w) {
		return
	}
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	p, err := s.stats.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		http.Error(w, `{"error":"invalid_credentials"}`, http.StatusUnauthorized)
		return
	}
	s.issueToken(w, p)
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setAuthCookie(w, "", time.Time{}, -1)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, p *stats.Player) {
	tok, exp, err := s.signJWT(p.ID, p.Username)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp, 0)
	_ = json.NewEncoder(w).Encode(authRes{ID: p.ID, Username: p.Username, Token: tok})
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT with id/username and the configured expiry.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.JWTExpiry)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// parseJWT validates a token and returns its player.
func (s *Server) parseJWT(tok string) (*authPlayer, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return nil, errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return nil, errors.New("invalid token")
	}
	return &authPlayer{ID: id, Username: username}, nil
}

// setAuthCookie writes (or with maxAge < 0 deletes) the auth cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ---------------------------- auth middleware ------------------------------

// authenticate resolves the request's player, checking they still exist.
func (s *Server) authenticate(r *http.Request) *authPlayer {
	if s.stats == nil {
		return nil
	}
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return nil
	}
	p, err := s.parseJWT(tok)
	if err != nil {
		return nil
	}
	if _, err := s.stats.FindByID(r.Context(), p.ID); err != nil {
		return nil
	}
	return p
}

// withOptionalAuth decorates requests with the player when a valid token is
// present. It never rejects; guests may play.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := s.authenticate(r); p != nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid token.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.statsEnabled(w) {
				return
			}
			p := s.authenticate(r)
			if p == nil {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, p)))
		})
	}
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
