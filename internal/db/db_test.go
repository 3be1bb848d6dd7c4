package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbh, err := OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

func TestDayKey(t *testing.T) {
	d := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := DayKey(d); got != "pomodoro:2025-03-10" {
		t.Fatalf("DayKey = %q, want %q", got, "pomodoro:2025-03-10")
	}
}

func TestMissingCounterReadsZero(t *testing.T) {
	dbh := newTestDB(t)
	n, err := CompletedSessions(dbh, "pomodoro:2020-01-01")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 0 {
		t.Fatalf("count = %d, want 0", n)
	}
}

func TestCounterOverwrite(t *testing.T) {
	dbh := newTestDB(t)
	key := DayKey(time.Now())
	if err := SetCompletedSessions(dbh, key, 3); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetCompletedSessions(dbh, key, 4); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	n, err := CompletedSessions(dbh, key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 4 {
		t.Fatalf("count = %d, want 4", n)
	}
}

func TestCountersAreKeyedByDay(t *testing.T) {
	dbh := newTestDB(t)
	monday := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	if err := SetCompletedSessions(dbh, DayKey(monday), 8); err != nil {
		t.Fatalf("set: %v", err)
	}

	n, err := CompletedSessions(dbh, DayKey(tuesday))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 0 {
		t.Fatalf("tuesday count = %d, want fresh 0", n)
	}
}

func TestRecentCountsFillsMissingDays(t *testing.T) {
	dbh := newTestDB(t)
	today := time.Now()
	if err := SetCompletedSessions(dbh, DayKey(today), 5); err != nil {
		t.Fatalf("set: %v", err)
	}

	counts, err := RecentCounts(dbh, time.Local, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("len = %d, want 3", len(counts))
	}
	if counts[0].Count != 0 || counts[1].Count != 0 {
		t.Fatalf("padding days = %d/%d, want 0/0", counts[0].Count, counts[1].Count)
	}
	last := counts[len(counts)-1]
	if last.Day != today.Format("2006-01-02") || last.Count != 5 {
		t.Fatalf("today = %+v, want %s/5", last, today.Format("2006-01-02"))
	}
}

func TestTotalCompletedSums(t *testing.T) {
	dbh := newTestDB(t)
	d := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := SetCompletedSessions(dbh, DayKey(d), 6); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetCompletedSessions(dbh, DayKey(d.AddDate(0, 0, 1)), 2); err != nil {
		t.Fatalf("set: %v", err)
	}

	total, err := TotalCompleted(dbh)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 8 {
		t.Fatalf("total = %d, want 8", total)
	}
}

func TestLogAndListSessions(t *testing.T) {
	dbh := newTestDB(t)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	if err := LogSession(dbh, "focus", base, base.Add(25*time.Minute), 1500); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := LogSession(dbh, "short_break", base.Add(30*time.Minute), base.Add(35*time.Minute), 300); err != nil {
		t.Fatalf("log: %v", err)
	}

	sessions, err := RecentSessions(dbh, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	if sessions[0].Mode != "short_break" {
		t.Fatalf("newest mode = %q, want short_break", sessions[0].Mode)
	}
	if sessions[1].Seconds != 1500 {
		t.Fatalf("focus seconds = %d, want 1500", sessions[1].Seconds)
	}
	if sessions[0].ID == sessions[1].ID || sessions[0].ID == "" {
		t.Fatalf("ids not unique: %q / %q", sessions[0].ID, sessions[1].ID)
	}
}

func TestRecentSessionsHonorsLimit(t *testing.T) {
	dbh := newTestDB(t)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		if err := LogSession(dbh, "focus", start, start.Add(25*time.Minute), 1500); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	sessions, err := RecentSessions(dbh, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
}
