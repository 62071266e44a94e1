// internal/game/types.go
//
// Core type definitions for the frogtrap game engine.
// Defines:
//   - Status: lifecycle of a single game (ongoing/win/lose).
//   - Snapshot: the serializable view of the board handed to callers.
//   - TurnResult: the outcome of one applied placement.
//   - The sentinel errors the engine can return.

package game

import (
	"errors"

	"github.com/josephgh/frogtrap/internal/hexgrid"
)

// Status represents the lifecycle state of a game.
// Possible values:
//   - "ongoing": the frog is neither trapped nor escaped.
//   - "win":     the frog is enclosed, the player won.
//   - "lose":    the frog reached a boundary cell and escaped.
type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWin     Status = "win"
	StatusLose    Status = "lose"
)

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool { return s == StatusWin || s == StatusLose }

// Recoverable gameplay errors, surfaced to the transport layer.
var (
	// ErrInvalidPlacement: coordinate out of bounds, already an
	// obstacle, or the frog's own cell. The board is unchanged.
	ErrInvalidPlacement = errors.New("invalid placement")

	// ErrGameOver: the game is already won or lost; reset to play again.
	ErrGameOver = errors.New("game already over")
)

// Internal invariant violations. Seeing one of these means a bug in the
// engine itself, not a bad request.
var (
	// ErrInvalidMove: the policy proposed a cell that is not a free
	// neighbor of the frog.
	ErrInvalidMove = errors.New("invalid frog move")

	// ErrIllegalTransition: attempt to change a terminal status.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Cell is the wire form of a coordinate: [row, col].
type Cell [2]int

// cellOf converts a hexgrid.Coordinate to its wire form.
func cellOf(c hexgrid.Coordinate) Cell { return Cell{c.Row, c.Col} }

// Snapshot is the serializable view of the board at a point in time.
// This is the only shape the presentation layer may depend on.
// Obstacles are sorted by (row, col) so identical placement sequences
// produce byte-identical encodings.
type Snapshot struct {
	Frog      Cell   `json:"frog"`
	Obstacles []Cell `json:"obstacles"`
	Status    Status `json:"status"`
}

// TurnResult describes what one placement did, mirroring the per-click
// payload the front-end renders (hop animation, escape-path highlight).
type TurnResult struct {
	Added   bool   `json:"added"`          // obstacle committed at the clicked cell
	MovedTo Cell   `json:"movedTo"`        // frog cell after its hop (unchanged on win)
	Path    []Cell `json:"path,omitempty"` // frog's shortest escape path before the hop
	Status  Status `json:"status"`
}
