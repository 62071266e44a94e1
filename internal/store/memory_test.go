package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgh/frogtrap/internal/game"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	eng := game.New(game.Config{Rows: 5, Cols: 5})
	require.NoError(t, m.Save(ctx, eng))

	got, err := m.Get(ctx, eng.ID)
	require.NoError(t, err)
	assert.Same(t, eng, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
