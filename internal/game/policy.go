// internal/game/policy.go
//
// The frog's evasion policy. Among the free neighbors of the frog's
// cell, pick the one with the smallest shortest-path distance to any
// reachable boundary cell over the current free-cell graph. Ties go to
// the earlier cell in hexgrid.Grid.Neighbors order, which keeps a game
// fully reproducible for a given placement sequence.

package game

import "github.com/josephgh/frogtrap/internal/hexgrid"

// unreachable marks cells with no free path to the boundary.
const unreachable = int(^uint(0) >> 1)

// boundaryDistances runs a multi-source BFS seeded from every free
// boundary cell and returns the distance of each free cell to its
// nearest escape point. Cells absent from the map are unreachable.
func boundaryDistances(b *Board) map[hexgrid.Coordinate]int {
	dist := make(map[hexgrid.Coordinate]int)
	var queue []hexgrid.Coordinate

	for row := 0; row < b.grid.Rows(); row++ {
		for col := 0; col < b.grid.Cols(); col++ {
			c := hexgrid.Coordinate{Row: row, Col: col}
			if b.grid.IsBoundary(c) && b.isFree(c) {
				dist[c] = 0
				queue = append(queue, c)
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range b.grid.Neighbors(cur) {
			if !b.isFree(nb) {
				continue
			}
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}
	return dist
}

// nextFrogMove selects the frog's hop. The second return value is false
// when the frog has no free neighbor at all, which the engine treats as
// enclosure (a win) rather than an error.
func nextFrogMove(b *Board) (hexgrid.Coordinate, bool) {
	dist := boundaryDistances(b)

	var (
		best     hexgrid.Coordinate
		bestDist = unreachable
		found    bool
	)
	for _, nb := range b.grid.Neighbors(b.Frog()) {
		if !b.isFree(nb) {
			continue
		}
		d, ok := dist[nb]
		if !ok {
			d = unreachable
		}
		// Strict < keeps the first candidate on ties, so the
		// Neighbors enumeration order is the tie-break.
		if !found || d < bestDist {
			best, bestDist, found = nb, d, true
		}
	}
	return best, found
}
