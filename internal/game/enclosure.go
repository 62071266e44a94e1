// internal/game/enclosure.go
//
// Enclosure detection: a breadth-first search over the free-cell graph
// decides whether the frog still has a path to the grid boundary. The
// same search also yields the shortest escape path, which the click
// response exposes for front-end highlighting.
//
// Runs after every committed placement, before the frog moves, so the
// verdict reflects the board exactly as the player left it.
// Complexity is O(rows×cols) per invocation.

package game

import "github.com/josephgh/frogtrap/internal/hexgrid"

// escapePath returns the shortest free-cell path from the frog to any
// boundary cell, including both endpoints. A frog already sitting on a
// boundary cell yields a single-element path. If no boundary cell is
// reachable the result is nil: the frog is enclosed.
func escapePath(b *Board) []hexgrid.Coordinate {
	start := b.Frog()
	if b.grid.IsBoundary(start) {
		return []hexgrid.Coordinate{start}
	}

	queue := []hexgrid.Coordinate{start}
	visited := map[hexgrid.Coordinate]struct{}{start: {}}
	parent := make(map[hexgrid.Coordinate]hexgrid.Coordinate)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if b.grid.IsBoundary(cur) {
			// Walk parents back to the start, then reverse.
			path := []hexgrid.Coordinate{cur}
			for path[len(path)-1] != start {
				path = append(path, parent[path[len(path)-1]])
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, nb := range b.grid.Neighbors(cur) {
			if _, seen := visited[nb]; seen {
				continue
			}
			if b.HasObstacle(nb) {
				continue
			}
			visited[nb] = struct{}{}
			parent[nb] = cur
			queue = append(queue, nb)
		}
	}
	return nil
}

// enclosed reports whether the frog has no free-cell path to the
// boundary. This is the player's win condition.
func enclosed(b *Board) bool { return escapePath(b) == nil }
