package storage

import (
	"database/sql"
	"fmt"

	"github.com/vovakirdan/triplejoy/internal/achievements"
)

// Ensure Store implements achievements.Store
var _ achievements.Store = (*Store)(nil)

// LoadProgress returns the saved totals and achievements of player.
// An unknown player has zero progress.
func (s *Store) LoadProgress(player string) (achievements.Progress, error) {
	p := achievements.Progress{Records: make(map[string]achievements.Record)}

	err := s.db.QueryRow(
		"SELECT total_score, levels_completed FROM player_stats WHERE player = ?",
		player,
	).Scan(&p.TotalScore, &p.LevelsCompleted)
	if err != nil && !isNoRows(err) {
		return p, fmt.Errorf("storage: cannot load stats: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT title, current_value, unlocked, unlocked_at FROM achievements WHERE player = ?",
		player,
	)
	if err != nil {
		return p, fmt.Errorf("storage: cannot load achievements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			title      string
			r          achievements.Record
			unlocked   int
			unlockedAt any
		)
		if err := rows.Scan(&title, &r.Current, &unlocked, &unlockedAt); err != nil {
			return p, fmt.Errorf("storage: cannot scan achievement: %w", err)
		}
		r.Unlocked = unlocked != 0
		r.UnlockedAt = parseTime(unlockedAt)
		p.Records[title] = r
	}

	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return p, nil
}

// SaveProgress replaces the stored progress of player in one transaction.
func (s *Store) SaveProgress(player string, p achievements.Progress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec(
		`INSERT INTO player_stats (player, total_score, levels_completed) VALUES (?, ?, ?)
		 ON CONFLICT(player) DO UPDATE SET total_score = excluded.total_score, levels_completed = excluded.levels_completed`,
		player, p.TotalScore, p.LevelsCompleted,
	); err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}

	for title, r := range p.Records {
		var unlockedAt any
		if r.Unlocked && !r.UnlockedAt.IsZero() {
			unlockedAt = r.UnlockedAt.UTC().Format(sqliteTime)
		}
		if _, err := tx.Exec(
			`INSERT INTO achievements (player, title, current_value, unlocked, unlocked_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(player, title) DO UPDATE SET
			   current_value = excluded.current_value,
			   unlocked = excluded.unlocked,
			   unlocked_at = excluded.unlocked_at`,
			player, title, r.Current, boolInt(r.Unlocked), unlockedAt,
		); err != nil {
			return fmt.Errorf("storage: cannot save achievement %q: %w", title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// ResetProgress deletes every total and achievement of player.
func (s *Store) ResetProgress(player string) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM achievements WHERE player = ?", player); err != nil {
			return fmt.Errorf("storage: cannot reset achievements: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM player_stats WHERE player = ?", player); err != nil {
			return fmt.Errorf("storage: cannot reset stats: %w", err)
		}
		return nil
	})
}

// Players lists every player with saved progress.
func (s *Store) Players() ([]string, error) {
	rows, err := s.db.Query("SELECT player FROM player_stats ORDER BY player")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck // Returning the original error
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
