package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// BoardSeed returns a deterministic spawn seed for a date using
// HMAC(salt, YYYY-MM-DD). Every player sees the same starting board on
// the same day, which is what makes the leaderboard comparable.
func BoardSeed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// First 8 bytes give a well-distributed signed seed.
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
