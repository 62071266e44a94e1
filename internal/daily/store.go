package daily

import (
	"context"
	"database/sql"
)

type Result struct {
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	Seed       int64  `json:"seed"`
	Placements int    `json:"placements"`
	ElapsedMs  int    `json:"elapsedMs"`
	Won        bool   `json:"won"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, seed, placements, elapsed_ms, won)
		 VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.Seed, r.Placements, r.ElapsedMs, r.Won,
	)
	return err
}

type LBRow struct {
	UserID     string `json:"userId"`
	Placements int    `json:"placements"`
	ElapsedMs  int    `json:"elapsedMs"`
}

// Leaderboard ranks winning results: fewest placements first, then
// fastest, then earliest submission.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, placements, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY placements ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Placements, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
