package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgh/frogtrap/internal/hexgrid"
)

// ringAround returns the six neighbors of c, the minimal seal.
func ringAround(b *Board, c hexgrid.Coordinate) []hexgrid.Coordinate {
	return b.grid.Neighbors(c)
}

// reachesBoundary is an independent exhaustive check: a plain DFS over
// free cells, used to cross-validate the BFS verdict.
func reachesBoundary(b *Board) bool {
	stack := []hexgrid.Coordinate{b.Frog()}
	seen := map[hexgrid.Coordinate]struct{}{b.Frog(): {}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.grid.IsBoundary(cur) {
			return true
		}
		for _, nb := range b.grid.Neighbors(cur) {
			if _, ok := seen[nb]; ok {
				continue
			}
			if b.HasObstacle(nb) {
				continue
			}
			seen[nb] = struct{}{}
			stack = append(stack, nb)
		}
	}
	return false
}

func TestEscapePathOnEmptyBoard(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	path := escapePath(b)
	require.NotNil(t, path)
	assert.Equal(t, b.Frog(), path[0])
	assert.True(t, b.grid.IsBoundary(path[len(path)-1]))
	// Center of a 5x5 grid is two hops from the edge.
	assert.Len(t, path, 3)
}

func TestEscapePathThroughSingleGap(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	gap := cellAt(3, 2)
	for _, c := range ringAround(b, b.Frog()) {
		if c != gap {
			require.NoError(t, b.placeObstacle(c))
		}
	}
	assert.Equal(t, []hexgrid.Coordinate{cellAt(2, 2), cellAt(3, 2), cellAt(4, 2)}, escapePath(b))
	assert.False(t, enclosed(b))
}

func TestEnclosedByFullRing(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	for _, c := range ringAround(b, b.Frog()) {
		require.NoError(t, b.placeObstacle(c))
	}
	assert.True(t, enclosed(b))
	assert.Nil(t, escapePath(b))

	// Soundness: the independent exhaustive search agrees.
	assert.False(t, reachesBoundary(b))
}

func TestFrogOnBoundaryNeverEnclosed(t *testing.T) {
	// On a single-row grid the frog starts on the boundary; even
	// walled in on both sides it has trivially escaped.
	b := newBoard(hexgrid.New(1, 5))
	require.Equal(t, cellAt(0, 2), b.Frog())
	require.NoError(t, b.placeObstacle(cellAt(0, 1)))
	require.NoError(t, b.placeObstacle(cellAt(0, 3)))

	assert.False(t, enclosed(b))
	assert.Equal(t, []hexgrid.Coordinate{cellAt(0, 2)}, escapePath(b))
}

func TestEnclosureAgreesWithExhaustiveSearch(t *testing.T) {
	// A handful of crafted boards, both open and sealed: the BFS
	// verdict must match the independent reachability check on all.
	boards := []func() *Board{
		func() *Board { return newBoard(hexgrid.New(5, 5)) },
		func() *Board {
			b := newBoard(hexgrid.New(5, 5))
			for _, c := range ringAround(b, b.Frog()) {
				_ = b.placeObstacle(c)
			}
			return b
		},
		func() *Board {
			b := newBoard(hexgrid.New(7, 7))
			// Wall off rows 2 and 4 entirely, leaving the frog in a
			// free corridor on row 3.
			for col := 0; col < 7; col++ {
				_ = b.placeObstacle(cellAt(2, col))
				_ = b.placeObstacle(cellAt(4, col))
			}
			return b
		},
	}
	for i, mk := range boards {
		b := mk()
		assert.Equal(t, !reachesBoundary(b), enclosed(b), "board %d", i)
	}
}
