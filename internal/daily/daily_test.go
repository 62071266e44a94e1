package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 01:30 on Jan 2 in UTC+9 is still Jan 1 in UTC.
	ts := time.Date(2025, 1, 2, 1, 30, 0, 0, loc)
	assert.Equal(t, "2025-01-01", DateKey(ts))
}

func TestBoardSeedDeterministic(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, BoardSeed(ts, "salt"), BoardSeed(ts, "salt"))

	// Same calendar day, different wall-clock time: same seed.
	later := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, BoardSeed(ts, "salt"), BoardSeed(later, "salt"))
}

func TestBoardSeedVariesByDateAndSalt(t *testing.T) {
	ts := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	next := ts.AddDate(0, 0, 1)
	assert.NotEqual(t, BoardSeed(ts, "salt"), BoardSeed(next, "salt"))
	assert.NotEqual(t, BoardSeed(ts, "salt"), BoardSeed(ts, "pepper"))
}
