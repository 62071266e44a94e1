// internal/game/engine.go
//
// Core game engine for a single frogtrap session.
// Responsibilities:
//   - Create games over a configurable hex grid (11x11 by default),
//     optionally pre-seeded with random starting obstacles.
//   - Validate and apply obstacle placements.
//   - Run the enclosure check and the frog's evasion hop each turn.
//   - Track state transitions: ongoing → win/lose.
//
// Notes:
//   - One mutex per engine serializes ApplyMove/Reset/State, so a
//     session never sees overlapping mutation. Sessions share nothing.
//   - Starting obstacles come from a seeded math/rand source and Reset
//     reseeds it, so a given Config replays identically every time.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"sync"

	"github.com/josephgh/frogtrap/internal/hexgrid"
)

const (
	defaultRows = 11
	defaultCols = 11
)

// Config fixes a game's grid dimensions and starting-obstacle spawn.
// The zero value means an 11x11 grid with no starting obstacles.
type Config struct {
	Rows int
	Cols int

	// Between MinObstacles and MaxObstacles random obstacles are
	// spawned at game start, never on the frog's cell. Zero disables
	// spawning.
	MinObstacles int
	MaxObstacles int

	// Seed drives the spawn RNG. The same Config always produces the
	// same starting board.
	Seed int64
}

// withDefaults fills in unset dimensions and normalizes the spawn range.
func (c Config) withDefaults() Config {
	if c.Rows <= 0 {
		c.Rows = defaultRows
	}
	if c.Cols <= 0 {
		c.Cols = defaultCols
	}
	if c.MinObstacles < 0 {
		c.MinObstacles = 0
	}
	if c.MaxObstacles < c.MinObstacles {
		c.MaxObstacles = c.MinObstacles
	}
	return c
}

// Engine owns one game session: the grid, the live board, and the
// config needed to rebuild the board on reset.
type Engine struct {
	ID string // unique session identifier (random hex string)

	mu    sync.Mutex
	cfg   Config
	grid  hexgrid.Grid
	board *Board
}

// New constructs an engine and deals the starting board.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		ID:   randomID(),
		cfg:  cfg,
		grid: hexgrid.New(cfg.Rows, cfg.Cols),
	}
	e.board = e.freshBoard()
	return e
}

// Grid returns the engine's immutable grid configuration.
func (e *Engine) Grid() hexgrid.Grid { return e.grid }

// freshBoard builds a new board and spawns starting obstacles.
func (e *Engine) freshBoard() *Board {
	b := newBoard(e.grid)
	if e.cfg.MaxObstacles > 0 {
		rng := mrand.New(mrand.NewSource(e.cfg.Seed))
		n := e.cfg.MinObstacles
		if span := e.cfg.MaxObstacles - e.cfg.MinObstacles; span > 0 {
			n += rng.Intn(span + 1)
		}
		e.spawnObstacles(b, rng, n)
	}
	return b
}

// spawnObstacles places up to n random obstacles, skipping the frog's
// cell and already-occupied cells. The attempt cap mirrors the spawn
// count so a crowded grid cannot loop forever.
func (e *Engine) spawnObstacles(b *Board, rng *mrand.Rand, n int) {
	for attempts := 0; b.ObstacleCount() < n && attempts < n*10+100; attempts++ {
		c := hexgrid.Coordinate{Row: rng.Intn(e.grid.Rows()), Col: rng.Intn(e.grid.Cols())}
		if c == b.Frog() {
			continue
		}
		_ = b.placeObstacle(c)
	}
}

// ApplyMove runs one full turn for a placement at c.
//
// Sequence:
//  1. Terminal game → ErrGameOver, nothing mutated.
//  2. Illegal placement → ErrInvalidPlacement, nothing mutated.
//  3. Commit the obstacle.
//  4. Enclosure check on the board as the player left it; enclosed →
//     win, and the frog does not move on the winning turn.
//  5. Frog hops via the evasion policy; no free neighbor → win.
//  6. Frog on a boundary cell → lose.
//
// Returns the turn result and the post-turn snapshot.
func (e *Engine) ApplyMove(c hexgrid.Coordinate) (TurnResult, Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.board
	if b.Status().Terminal() {
		return TurnResult{}, b.snapshot(), ErrGameOver
	}
	if err := b.placeObstacle(c); err != nil {
		return TurnResult{}, b.snapshot(), err
	}

	res := TurnResult{Added: true, MovedTo: cellOf(b.Frog())}

	path := escapePath(b)
	if path == nil {
		if err := b.setStatus(StatusWin); err != nil {
			return res, b.snapshot(), err
		}
		res.Status = StatusWin
		return res, b.snapshot(), nil
	}
	res.Path = make([]Cell, len(path))
	for i, p := range path {
		res.Path[i] = cellOf(p)
	}

	next, ok := nextFrogMove(b)
	if !ok {
		// Same enclosure condition, detected via movement failure.
		if err := b.setStatus(StatusWin); err != nil {
			return res, b.snapshot(), err
		}
		res.Status = StatusWin
		return res, b.snapshot(), nil
	}
	if err := b.moveFrogTo(next); err != nil {
		return res, b.snapshot(), err
	}
	res.MovedTo = cellOf(b.Frog())

	if e.grid.IsBoundary(b.Frog()) {
		if err := b.setStatus(StatusLose); err != nil {
			return res, b.snapshot(), err
		}
	}
	res.Status = b.Status()
	return res, b.snapshot(), nil
}

// Reset replaces the board wholesale and returns the fresh snapshot.
// The spawn RNG is reseeded, so a reset engine replays identically.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = e.freshBoard()
	return e.board.snapshot()
}

// State returns the current snapshot without mutating anything.
// Callable at any time, including after the game has ended.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.snapshot()
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
