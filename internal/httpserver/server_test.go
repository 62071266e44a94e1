// internal/httpserver/server_test.go
//
// Handler tests run against the real chi router with an in-memory
// SQLite database, so routing, middleware, and persistence are all
// exercised the way the process runs them.

package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgh/frogtrap/internal/game"
	"github.com/josephgh/frogtrap/internal/store"
)

// testSchema mirrors sql/0001_init.sql closely enough for the handlers.
const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE, password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL, games_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0, streak INTEGER NOT NULL DEFAULT 0, best_win INTEGER
);
CREATE TABLE games (
    id TEXT PRIMARY KEY, user_id TEXT, anonymous_id TEXT, grid_rows INTEGER NOT NULL,
    grid_cols INTEGER NOT NULL, started_at TEXT NOT NULL, finished_at TEXT,
    status TEXT NOT NULL DEFAULT 'ongoing', placements INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL, date TEXT NOT NULL, seed INTEGER NOT NULL,
    placements INTEGER NOT NULL, elapsed_ms INTEGER NOT NULL,
    won INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE(user_id, date)
);`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return New(store.NewMemoryStore(), db, game.Config{Rows: 11, Cols: 11})
}

// do performs a request against the router and decodes the JSON body.
func do(t *testing.T, s *Server, method, path string, body any, out any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestDefaultBoardFlow(t *testing.T) {
	s := newTestServer(t)

	var st stateRes
	rec := do(t, s, http.MethodGet, "/state", nil, &st)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 11, st.Rows)
	assert.Equal(t, 11, st.Cols)
	assert.Equal(t, game.Cell{5, 5}, st.State.Frog)
	assert.Equal(t, game.StatusOngoing, st.State.Status)

	// Clicking the frog's own cell is an invalid placement.
	rec = do(t, s, http.MethodPost, "/click", clickReq{R: 5, C: 5}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_placement")

	// A legal click commits the obstacle and hops the frog.
	var cr clickRes
	rec = do(t, s, http.MethodPost, "/click", clickReq{R: 4, C: 5}, &cr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cr.Result.Added)
	assert.Len(t, cr.State.Obstacles, 1)
	assert.NotEqual(t, game.Cell{5, 5}, cr.State.Frog)

	// Reset brings back the empty center board.
	var rr map[string]game.Snapshot
	rec = do(t, s, http.MethodPost, "/reset", nil, &rr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.Cell{5, 5}, rr["state"].Frog)
	assert.Empty(t, rr["state"].Obstacles)
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	var ng newGameRes
	rec := do(t, s, http.MethodPost, "/game/new", newGameReq{Rows: 7, Cols: 7}, &ng)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, ng.GameID)
	assert.Equal(t, 7, ng.Rows)
	assert.Equal(t, game.Cell{3, 3}, ng.State.Frog)

	// History row was written for the session.
	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(1) FROM games WHERE id=?`, ng.GameID).Scan(&count))
	assert.Equal(t, 1, count)

	var cr clickRes
	rec = do(t, s, http.MethodPost, "/game/click", clickReq{GameID: ng.GameID, R: 0, C: 0}, &cr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, cr.Result.Added)

	var st stateRes
	rec = do(t, s, http.MethodGet, "/game/state?gameId="+ng.GameID, nil, &st)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, st.State.Obstacles, 1)

	// Unknown sessions 404.
	rec = do(t, s, http.MethodPost, "/game/click", clickReq{GameID: "nope", R: 0, C: 0}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/game/state?gameId=nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupLoginAndStats(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/auth/signup",
		map[string]string{"Username": "greenkeeper", "Password": "hunter2hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var token *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "frogtrap_token" {
			token = c
		}
	}
	require.NotNil(t, token, "signup should set the auth cookie")

	var me authUser
	rec = do(t, s, http.MethodGet, "/auth/me", nil, &me, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "greenkeeper", me.Username)

	var stats map[string]any
	rec = do(t, s, http.MethodGet, "/stats/me", nil, &stats, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, stats["gamesPlayed"])
	assert.Nil(t, stats["bestWin"])

	// Duplicate username is a conflict.
	rec = do(t, s, http.MethodPost, "/auth/signup",
		map[string]string{"Username": "greenkeeper", "Password": "hunter2hunter2"}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unauthenticated stats are rejected.
	rec = do(t, s, http.MethodGet, "/stats/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDailyFlow(t *testing.T) {
	s := newTestServer(t)

	var nr dailyNewRes
	rec := do(t, s, http.MethodPost, "/daily/new", nil, &nr)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, nr.GameID)
	assert.False(t, nr.Played)
	// Daily boards spawn a seeded obstacle set.
	assert.GreaterOrEqual(t, len(nr.State.Obstacles), 10)
	assert.LessOrEqual(t, len(nr.State.Obstacles), 15)

	var lb lbRes
	rec = do(t, s, http.MethodGet, "/daily/leaderboard", nil, &lb)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, nr.Date, lb.Date)
	assert.Empty(t, lb.Top)
}
