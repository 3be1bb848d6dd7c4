package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Session is one logged session row.
type Session struct {
	ID          string
	Mode        string
	StartedAt   string
	CompletedAt string
	Seconds     int
}

// LogSession records a session that ran to completion.
func LogSession(dbh *sql.DB, mode string, startedAt, completedAt time.Time, seconds int) error {
	query := `
		INSERT INTO sessions (id, mode, started_at, completed_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := dbh.Exec(query,
		uuid.NewString(), mode,
		startedAt.UTC().Format(time.RFC3339),
		completedAt.UTC().Format(time.RFC3339),
		seconds,
	)
	return err
}

// RecentSessions returns the most recently completed sessions, newest first.
func RecentSessions(dbh *sql.DB, limit int) ([]Session, error) {
	query := `
		SELECT id, mode, started_at, completed_at, duration_seconds
		FROM sessions
		ORDER BY completed_at DESC
		LIMIT ?
	`

	rows, err := dbh.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Mode, &s.StartedAt, &s.CompletedAt, &s.Seconds); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}
