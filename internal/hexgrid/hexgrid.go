// internal/hexgrid/hexgrid.go
//
// Hexagonal grid geometry for the frogtrap board.
// Defines:
//   - Coordinate: (row, col) cell address with value identity.
//   - Grid: immutable rows×cols configuration with odd-row offset
//     hex adjacency, boundary test, and bounds checking.
//
// Notes:
//   - Odd rows are shifted half a cell to the right (odd-row offset
//     scheme), which is why the six neighbor offsets depend on row
//     parity.
//   - Neighbors are enumerated in a fixed order (NW, NE, W, E, SW, SE)
//     so that callers iterating over them behave deterministically.

package hexgrid

// Coordinate addresses a single cell. Row and Col are 0-indexed.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Neighbor offsets by row parity, in NW, NE, W, E, SW, SE order.
var (
	evenRowOffsets = [6][2]int{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	oddRowOffsets  = [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}}
)

// Grid is an immutable hex board configuration. The zero value is not
// usable; construct with New.
type Grid struct {
	rows int
	cols int
}

// New returns a Grid with the given dimensions. Dimensions smaller than
// one are clamped to one so a Grid always contains at least one cell.
func New(rows, cols int) Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return Grid{rows: rows, cols: cols}
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// Center returns the canonical frog start cell.
func (g Grid) Center() Coordinate {
	return Coordinate{Row: g.rows / 2, Col: g.cols / 2}
}

// InBounds reports whether c lies within the grid.
func (g Grid) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Neighbors returns the in-bounds hex neighbors of c, at most six, in a
// fixed parity-aware order. c itself must be in bounds.
func (g Grid) Neighbors(c Coordinate) []Coordinate {
	offsets := &evenRowOffsets
	if c.Row%2 != 0 {
		offsets = &oddRowOffsets
	}
	out := make([]Coordinate, 0, 6)
	for _, d := range offsets {
		nb := Coordinate{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.InBounds(nb) {
			out = append(out, nb)
		}
	}
	return out
}

// IsBoundary reports whether c is an escape cell: one sitting on the
// outer ring of the grid. Equivalent to c having at least one
// out-of-grid hex neighbor.
func (g Grid) IsBoundary(c Coordinate) bool {
	return c.Row == 0 || c.Row == g.rows-1 || c.Col == 0 || c.Col == g.cols-1
}
