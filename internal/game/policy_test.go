package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgh/frogtrap/internal/hexgrid"
)

func TestBoundaryDistancesOnEmptyBoard(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	dist := boundaryDistances(b)

	assert.Equal(t, 0, dist[cellAt(0, 0)])
	assert.Equal(t, 0, dist[cellAt(4, 2)])
	assert.Equal(t, 1, dist[cellAt(1, 1)])
	assert.Equal(t, 2, dist[cellAt(2, 2)])
}

func TestNextFrogMoveTieBreakIsNeighborOrder(t *testing.T) {
	// Center of an empty 11x11: every free neighbor is exactly four
	// hops from the edge, so the first cell in Neighbors order wins.
	b := newBoard(hexgrid.New(11, 11))
	require.Equal(t, cellAt(5, 5), b.Frog())

	next, ok := nextFrogMove(b)
	require.True(t, ok)
	assert.Equal(t, cellAt(4, 5), next)
}

func TestNextFrogMoveSkipsObstacles(t *testing.T) {
	b := newBoard(hexgrid.New(11, 11))
	require.NoError(t, b.placeObstacle(cellAt(4, 5)))

	next, ok := nextFrogMove(b)
	require.True(t, ok)
	assert.Equal(t, cellAt(4, 6), next)
}

func TestNextFrogMoveHeadsForTheEdge(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	b.frog = cellAt(1, 2) // one hop from the top edge

	next, ok := nextFrogMove(b)
	require.True(t, ok)
	assert.Equal(t, cellAt(0, 2), next)
	assert.True(t, b.grid.IsBoundary(next))
}

func TestNextFrogMoveNoFreeNeighbor(t *testing.T) {
	b := newBoard(hexgrid.New(5, 5))
	for _, c := range b.grid.Neighbors(b.Frog()) {
		require.NoError(t, b.placeObstacle(c))
	}
	_, ok := nextFrogMove(b)
	assert.False(t, ok)
}

func TestNextFrogMovePrefersReachableEscape(t *testing.T) {
	// Frog pocket with one true exit: the neighbor on the escape
	// route must beat neighbors leading into dead pockets.
	b := newBoard(hexgrid.New(5, 5))
	gap := cellAt(3, 2)
	for _, c := range b.grid.Neighbors(b.Frog()) {
		if c != gap {
			require.NoError(t, b.placeObstacle(c))
		}
	}
	next, ok := nextFrogMove(b)
	require.True(t, ok)
	assert.Equal(t, gap, next)
}
