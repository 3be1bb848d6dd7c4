package db

import (
	"database/sql"
	"time"
)

const counterPrefix = "pomodoro:"

// DayKey returns the counter key for the calendar day of t,
// e.g. "pomodoro:2025-03-10".
func DayKey(t time.Time) string {
	return counterPrefix + t.Format("2006-01-02")
}

// CompletedSessions returns the stored counter for key. A key that was
// never written reads as zero.
func CompletedSessions(dbh *sql.DB, key string) (int, error) {
	var value int
	err := dbh.QueryRow(`SELECT value FROM counters WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

// SetCompletedSessions writes count under key, replacing any previous value.
func SetCompletedSessions(dbh *sql.DB, key string, count int) error {
	query := `
		INSERT INTO counters (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := dbh.Exec(query, key, count, time.Now().UTC().Format(time.RFC3339))
	return err
}

// DayCount is one calendar day's completed session count.
type DayCount struct {
	Day   string
	Count int
}

// RecentCounts returns counters for the last days calendar days in loc,
// ending today, oldest first. Days with no row report zero.
func RecentCounts(dbh *sql.DB, loc *time.Location, days int) ([]DayCount, error) {
	if days < 1 {
		days = 1
	}
	now := time.Now().In(loc)
	counts := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		n, err := CompletedSessions(dbh, DayKey(day))
		if err != nil {
			return nil, err
		}
		counts = append(counts, DayCount{Day: day.Format("2006-01-02"), Count: n})
	}
	return counts, nil
}

// TotalCompleted returns the all-time completed session count.
func TotalCompleted(dbh *sql.DB) (int, error) {
	var total int
	err := dbh.QueryRow(
		`SELECT COALESCE(SUM(value), 0) FROM counters WHERE key LIKE ?`,
		counterPrefix+"%",
	).Scan(&total)
	return total, err
}
