// internal/game/board.go
//
// Board is the single source of truth for one game: the frog's cell,
// the obstacle set, and the terminal status. Mutators are unexported
// and called only by the engine, which owns the turn sequencing.
//
// Invariants:
//   - The frog cell is never in the obstacle set.
//   - Placing on an occupied cell is rejected, never overwritten.
//   - Status moves one-way from ongoing to win or lose and is then
//     immutable until the board is replaced by a reset.

package game

import (
	"sort"

	"github.com/josephgh/frogtrap/internal/hexgrid"
)

// Board holds the mutable state of a single game.
type Board struct {
	grid      hexgrid.Grid
	frog      hexgrid.Coordinate
	obstacles map[hexgrid.Coordinate]struct{}
	status    Status
}

// newBoard returns a fresh ongoing board with the frog at grid center
// and no obstacles.
func newBoard(grid hexgrid.Grid) *Board {
	return &Board{
		grid:      grid,
		frog:      grid.Center(),
		obstacles: make(map[hexgrid.Coordinate]struct{}),
		status:    StatusOngoing,
	}
}

// Frog returns the frog's current cell.
func (b *Board) Frog() hexgrid.Coordinate { return b.frog }

// Status returns the current game status.
func (b *Board) Status() Status { return b.status }

// ObstacleCount returns the number of placed obstacles.
func (b *Board) ObstacleCount() int { return len(b.obstacles) }

// HasObstacle reports whether c holds an obstacle.
func (b *Board) HasObstacle(c hexgrid.Coordinate) bool {
	_, ok := b.obstacles[c]
	return ok
}

// isFree reports whether c can be traversed by the frog.
func (b *Board) isFree(c hexgrid.Coordinate) bool { return !b.HasObstacle(c) }

// placeObstacle commits an obstacle at c.
// Returns ErrInvalidPlacement if c is out of bounds, already occupied,
// or the frog's cell. The board is unchanged on error.
func (b *Board) placeObstacle(c hexgrid.Coordinate) error {
	if !b.grid.InBounds(c) || c == b.frog || b.HasObstacle(c) {
		return ErrInvalidPlacement
	}
	b.obstacles[c] = struct{}{}
	return nil
}

// moveFrogTo hops the frog onto c.
// Returns ErrInvalidMove unless c is a free neighbor of the current
// frog cell; the policy must only ever propose such cells.
func (b *Board) moveFrogTo(c hexgrid.Coordinate) error {
	if b.HasObstacle(c) {
		return ErrInvalidMove
	}
	for _, nb := range b.grid.Neighbors(b.frog) {
		if nb == c {
			b.frog = c
			return nil
		}
	}
	return ErrInvalidMove
}

// setStatus performs the one-way ongoing→terminal transition.
func (b *Board) setStatus(s Status) error {
	if b.status.Terminal() {
		return ErrIllegalTransition
	}
	b.status = s
	return nil
}

// snapshot renders the board into its serializable form. Obstacles are
// sorted so the encoding is stable across runs.
func (b *Board) snapshot() Snapshot {
	obs := make([]Cell, 0, len(b.obstacles))
	for c := range b.obstacles {
		obs = append(obs, cellOf(c))
	}
	sort.Slice(obs, func(i, j int) bool {
		if obs[i][0] != obs[j][0] {
			return obs[i][0] < obs[j][0]
		}
		return obs[i][1] < obs[j][1]
	})
	return Snapshot{Frog: cellOf(b.frog), Obstacles: obs, Status: b.status}
}
