// Package history records completed phases in SQLite so stats survive
// independently of the timer's own snapshot.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Session is one completed phase.
type Session struct {
	ID        int64
	Phase     string
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   int
}

// DayStats aggregates one calendar day.
type DayStats struct {
	Day           string
	FocusSeconds  int
	FocusSessions int
	Breaks        int
	MicroBreaks   int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

const layoutISO = "2006-01-02"

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: ensure directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initTables() error {
	_, err := s.db.Exec(`
        CREATE TABLE IF NOT EXISTS sessions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            phase TEXT NOT NULL,
            started_at DATETIME NOT NULL,
            ended_at DATETIME NOT NULL,
            seconds INTEGER NOT NULL,
            day TEXT NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("history: create sessions table: %w", err)
	}
	_, err = s.db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(day)
    `)
	if err != nil {
		return fmt.Errorf("history: create day index: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a completed phase.
func (s *Store) Record(sess Session) error {
	if sess.Seconds < 0 {
		sess.Seconds = 0
	}
	day := sess.EndedAt.Format(layoutISO)
	_, err := s.db.Exec(`
        INSERT INTO sessions (phase, started_at, ended_at, seconds, day)
        VALUES (?, ?, ?, ?, ?)
    `, sess.Phase, sess.StartedAt, sess.EndedAt, sess.Seconds, day)
	if err != nil {
		return fmt.Errorf("history: record session: %w", err)
	}
	return nil
}

// Day returns the aggregates for a single calendar day.
func (s *Store) Day(day time.Time) (DayStats, error) {
	stats := DayStats{Day: day.Format(layoutISO)}
	rows, err := s.db.Query(`
        SELECT phase, COUNT(*), COALESCE(SUM(seconds), 0)
        FROM sessions
        WHERE day = ?
        GROUP BY phase
    `, stats.Day)
	if err != nil {
		return stats, fmt.Errorf("history: day stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var phase string
		var count, seconds int
		if err := rows.Scan(&phase, &count, &seconds); err != nil {
			return stats, fmt.Errorf("history: scan day stats: %w", err)
		}
		applyPhase(&stats, phase, count, seconds)
	}
	return stats, rows.Err()
}

// RecentDays returns per-day aggregates for the last n days that have any
// recorded sessions, most recent first.
func (s *Store) RecentDays(n int) ([]DayStats, error) {
	if n <= 0 {
		n = 7
	}
	rows, err := s.db.Query(`
        SELECT day, phase, COUNT(*), COALESCE(SUM(seconds), 0)
        FROM sessions
        WHERE day IN (SELECT DISTINCT day FROM sessions ORDER BY day DESC LIMIT ?)
        GROUP BY day, phase
        ORDER BY day DESC
    `, n)
	if err != nil {
		return nil, fmt.Errorf("history: recent days: %w", err)
	}
	defer rows.Close()

	var out []DayStats
	byDay := make(map[string]int)
	for rows.Next() {
		var day, phase string
		var count, seconds int
		if err := rows.Scan(&day, &phase, &count, &seconds); err != nil {
			return nil, fmt.Errorf("history: scan recent days: %w", err)
		}
		i, ok := byDay[day]
		if !ok {
			out = append(out, DayStats{Day: day})
			i = len(out) - 1
			byDay[day] = i
		}
		applyPhase(&out[i], phase, count, seconds)
	}
	return out, rows.Err()
}

func applyPhase(stats *DayStats, phase string, count, seconds int) {
	switch phase {
	case "focus":
		stats.FocusSessions += count
		stats.FocusSeconds += seconds
	case "micro-break":
		stats.MicroBreaks += count
	default:
		stats.Breaks += count
	}
}
