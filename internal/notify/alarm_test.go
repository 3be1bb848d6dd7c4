package notify

import (
	"sync"
	"testing"
	"time"
)

type chimeCounter struct {
	mu sync.Mutex
	n  int
}

func (c *chimeCounter) strike() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *chimeCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestAlarmStrikesImmediatelyThenRepeats(t *testing.T) {
	var c chimeCounter
	a := NewAlarm(5*time.Millisecond, time.Second, c.strike)

	a.Start()
	time.Sleep(60 * time.Millisecond)
	a.Stop()

	if got := c.count(); got < 2 {
		t.Fatalf("chimes = %d, want at least 2 (initial strike plus repeats)", got)
	}
	if a.Ringing() {
		t.Fatal("alarm still ringing after Stop")
	}
}

func TestAlarmTimesOutOnItsOwn(t *testing.T) {
	var c chimeCounter
	a := NewAlarm(5*time.Millisecond, 20*time.Millisecond, c.strike)

	a.Start()
	time.Sleep(100 * time.Millisecond)

	if a.Ringing() {
		t.Fatal("alarm should have timed out")
	}
	before := c.count()
	time.Sleep(30 * time.Millisecond)
	if after := c.count(); after != before {
		t.Fatalf("chimes kept coming after timeout: %d then %d", before, after)
	}
}

func TestAlarmStopWhenIdleIsSafe(t *testing.T) {
	a := NewAlarm(time.Millisecond, time.Second, func() {})
	a.Stop()
	a.Stop()
	if a.Ringing() {
		t.Fatal("idle alarm reports ringing")
	}
}

func TestAlarmRestartOpensFreshWindow(t *testing.T) {
	var c chimeCounter
	a := NewAlarm(5*time.Millisecond, 150*time.Millisecond, c.strike)

	a.Start()
	time.Sleep(100 * time.Millisecond)
	a.Start()
	time.Sleep(100 * time.Millisecond)

	// The first window's timeout has passed, but the restarted one has not.
	if !a.Ringing() {
		t.Fatal("restart should have opened a fresh timeout window")
	}
	a.Stop()
}
