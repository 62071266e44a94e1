// internal/httpserver/server.go
//
// HTTP server wiring for the frogtrap backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Legacy single-board surface the browser front-end calls:
//     GET /state, POST /click, POST /reset (one shared default session).
//   - Session endpoints (optional auth): POST /game/new, POST /game/click,
//     POST /game/reset, GET /game/state.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//   - Database persistence for finished games and user stats.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes can still run for guests.
//   - Turn-level serialization lives inside game.Engine; handlers never
//     need their own board locking.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/josephgh/frogtrap/internal/game"
	"github.com/josephgh/frogtrap/internal/hexgrid"
	"github.com/josephgh/frogtrap/internal/store"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r        *chi.Mux
	store    store.Store
	db       *sql.DB
	cfg      game.Config  // board shape for new sessions
	defaults *game.Engine // shared session behind the legacy surface
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, cfg game.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db, cfg: cfg, defaults: game.New(cfg)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"frogtrap-go","endpoints":["/health","/state","POST /click","POST /reset","POST /game/new","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Legacy surface: the browser front-end plays one shared board.
	s.r.Get("/state", s.handleDefaultState)
	s.r.Post("/click", s.handleDefaultClick)
	s.r.Post("/reset", s.handleDefaultReset)

	// Session endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/click", s.handleGameClick)
	s.r.With(s.withOptionalAuth()).Post("/game/reset", s.handleGameReset)
	s.r.Get("/game/state", s.handleGameState)

	// Daily Challenge — OPTIONAL AUTH (guests can play; results persisted)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
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

// ------------------------------ GAME ---------------------------------------

// clickReq is the placement payload: the clicked cell.
type clickReq struct {
	GameID string `json:"gameId,omitempty"` // empty on the legacy surface
	R      int    `json:"r"`
	C      int    `json:"c"`
}

// clickRes pairs the turn outcome with the post-turn board snapshot.
type clickRes struct {
	Result game.TurnResult `json:"result"`
	State  game.Snapshot   `json:"state"`
}

// stateRes wraps a bare snapshot together with the board dimensions the
// renderer needs once.
type stateRes struct {
	Rows  int           `json:"rows"`
	Cols  int           `json:"cols"`
	State game.Snapshot `json:"state"`
}

// writeEngineErr maps engine sentinel errors onto HTTP statuses.
// Invariant-violation errors are a server bug and map to 500.
func writeEngineErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidPlacement):
		http.Error(w, `{"error":"invalid_placement"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrGameOver):
		http.Error(w, `{"error":"game_over"}`, http.StatusConflict)
	default:
		log.Error().Err(err).Msg("engine invariant violation")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

// applyClick runs one turn against eng and writes the shared response.
func applyClick(w http.ResponseWriter, eng *game.Engine, req clickReq) (game.Snapshot, bool) {
	res, snap, err := eng.ApplyMove(hexgrid.Coordinate{Row: req.R, Col: req.C})
	if err != nil {
		writeEngineErr(w, err)
		return snap, false
	}
	_ = json.NewEncoder(w).Encode(clickRes{Result: res, State: snap})
	return snap, true
}

// --- legacy shared-board surface ---

func (s *Server) handleDefaultState(w http.ResponseWriter, r *http.Request) {
	grid := s.defaults.Grid()
	_ = json.NewEncoder(w).Encode(stateRes{Rows: grid.Rows(), Cols: grid.Cols(), State: s.defaults.State()})
}

func (s *Server) handleDefaultClick(w http.ResponseWriter, r *http.Request) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	applyClick(w, s.defaults, req)
}

func (s *Server) handleDefaultReset(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]game.Snapshot{"state": s.defaults.Reset()})
}

// --- session surface ---

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Rows         int   `json:"rows"`
	Cols         int   `json:"cols"`
	MinObstacles int   `json:"minObstacles"`
	MaxObstacles int   `json:"maxObstacles"`
	Seed         int64 `json:"seed"`
}
type newGameRes struct {
	GameID string        `json:"gameId"`
	Rows   int           `json:"rows"`
	Cols   int           `json:"cols"`
	State  game.Snapshot `json:"state"`
}

// handleNewGame creates a new in-memory session and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	cfg := s.cfg
	if req.Rows > 0 {
		cfg.Rows = req.Rows
	}
	if req.Cols > 0 {
		cfg.Cols = req.Cols
	}
	if req.MaxObstacles > 0 {
		cfg.MinObstacles, cfg.MaxObstacles = req.MinObstacles, req.MaxObstacles
		cfg.Seed = req.Seed
	}

	eng := game.New(cfg)
	if err := s.store.Save(r.Context(), eng); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// Persist owner row for history/stats.
	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO games (id, user_id, grid_rows, grid_cols, started_at, status, placements)
		                     VALUES (?,?,?,?,?,?,0)`, eng.ID, me.ID, cfg.Rows, cfg.Cols, now, game.StatusOngoing)
		if err != nil {
			log.Warn().Err(err).Str("gameId", eng.ID).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.Exec(`INSERT INTO games (id, anonymous_id, grid_rows, grid_cols, started_at, status, placements)
		                     VALUES (?,?,?,?,?,?,0)`, eng.ID, anon, cfg.Rows, cfg.Cols, now, game.StatusOngoing)
		if err != nil {
			log.Warn().Err(err).Str("gameId", eng.ID).Msg("insert anon game row")
		}
	}

	grid := eng.Grid()
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: eng.ID, Rows: grid.Rows(), Cols: grid.Cols(), State: eng.State()})
}

// handleGameClick applies a placement to a session, persists progress,
// and (if finished) updates user stats in a best-effort transaction.
func (s *Server) handleGameClick(w http.ResponseWriter, r *http.Request) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	eng, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	snap, ok := applyClick(w, eng, req)
	if !ok {
		return
	}

	// Persist counters/history (best effort, non-fatal if it fails)
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin history tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET placements=? WHERE id=? AND `+ownerClause,
		len(snap.Obstacles), eng.ID, ownerArg); err != nil {
		log.Warn().Err(err).Msg("update placements")
	}

	if snap.Status.Terminal() {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			snap.Status, time.Now().UTC().Format(time.RFC3339), eng.ID, ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if me != nil {
			if err := s.bumpStats(tx, me.ID, snap.Status == game.StatusWin, len(snap.Obstacles)); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}

// resetReq is the payload for POST /game/reset.
type resetReq struct {
	GameID string `json:"gameId"`
}

// handleGameReset rebuilds a session's board and reopens its history row.
func (s *Server) handleGameReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	eng, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	snap := eng.Reset()
	if _, err := s.db.Exec(`UPDATE games SET status=?, finished_at=NULL, placements=? WHERE id=?`,
		game.StatusOngoing, len(snap.Obstacles), eng.ID); err != nil {
		log.Warn().Err(err).Str("gameId", eng.ID).Msg("reopen game row")
	}
	_ = json.NewEncoder(w).Encode(map[string]game.Snapshot{"state": snap})
}

// handleGameState returns a session snapshot without mutating it.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	eng, err := s.store.Get(r.Context(), r.URL.Query().Get("gameId"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	grid := eng.Grid()
	_ = json.NewEncoder(w).Encode(stateRes{Rows: grid.Rows(), Cols: grid.Cols(), State: eng.State()})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
