// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's daily board (creates or reuses session)
//   - POST /daily/click       → place an obstacle on today's daily board
//   - GET  /daily/leaderboard → fetch top 20 wins for today (or a given date)
//
// Each user can play once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play and persisted to DB when
// the game ends. Everyone gets the same board: the starting-obstacle
// seed is HMAC(salt, date), so leaderboard entries are comparable.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/josephgh/frogtrap/internal/daily"
	"github.com/josephgh/frogtrap/internal/game"
	"github.com/josephgh/frogtrap/internal/hexgrid"
)

// Starting-obstacle spawn range for daily boards.
const (
	dailyMinObstacles = 10
	dailyMaxObstacles = 15
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	Engine   *game.Engine
	UserID   string
	Date     string
	Seed     int64
	Start    time.Time
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/click", dd.handleClick)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key and the deterministic board seed.
func (d *dailyServer) dateKeyNow() (date string, seed int64) {
	now := time.Now().UTC()
	return daily.DateKey(now), daily.BoardSeed(now, d.salt)
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string        `json:"gameId"`
	Date   string        `json:"date"`
	Rows   int           `json:"rows"`
	Cols   int           `json:"cols"`
	State  game.Snapshot `json:"state"`
	Played bool          `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return its board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, seed := d.dateKeyNow()

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		cfg := d.srv.cfg
		cfg.MinObstacles, cfg.MaxObstacles, cfg.Seed = dailyMinObstacles, dailyMaxObstacles, seed
		sess = &dailySession{
			Engine: game.New(cfg),
			UserID: uid,
			Date:   date,
			Seed:   seed,
			Start:  time.Now(),
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	grid := sess.Engine.Grid()
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: sess.Engine.ID,
		Date:   date,
		Rows:   grid.Rows(),
		Cols:   grid.Cols(),
		State:  sess.Engine.State(),
	})
}

// -----------------------------------------------------------------------------
// /daily/click

// dailyClickReq is the request payload for /daily/click.
type dailyClickReq struct {
	GameID string `json:"gameId"`
	R      int    `json:"r"`
	C      int    `json:"c"`
}

// dailyClickRes is the response payload for /daily/click.
type dailyClickRes struct {
	Result game.TurnResult `json:"result"`
	State  game.Snapshot   `json:"state"`
	Locked bool            `json:"locked,omitempty"` // session already finished
}

// handleClick applies one placement to today's daily session.
// - Ensures a matching live session for the caller.
// - Rejects clicks on finished sessions.
// - Persists the result to DB once the game reaches win or lose.
func (d *dailyServer) handleClick(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyClickReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.GameID == "" {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.Engine.ID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		_ = json.NewEncoder(w).Encode(dailyClickRes{State: sess.Engine.State(), Locked: true})
		return
	}

	res, snap, err := sess.Engine.ApplyMove(hexgrid.Coordinate{Row: p.R, Col: p.C})
	if err != nil {
		writeEngineErr(w, err)
		return
	}

	// Persist once the board reaches a terminal state. A daily board is
	// one attempt: losses are recorded too, and lock the date.
	if snap.Status.Terminal() {
		d.mu.Lock()
		sess.Finished = true
		d.mu.Unlock()

		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID:     uid,
			Date:       date,
			Seed:       sess.Seed,
			Placements: len(snap.Obstacles),
			ElapsedMs:  elapsed,
			Won:        snap.Status == game.StatusWin,
		})
	}
	_ = json.NewEncoder(w).Encode(dailyClickRes{Result: res, State: snap})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
