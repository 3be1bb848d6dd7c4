package notify

import (
	"sync"
	"time"
)

// Alarm replays a chime until it is dismissed or its window times out.
// A second Start opens a fresh window and silences the previous one.
type Alarm struct {
	interval time.Duration
	timeout  time.Duration
	chime    func()

	mu   sync.Mutex
	stop chan struct{}
}

// NewAlarm builds an alarm that strikes chime every interval for at
// most timeout per window. A nil chime falls back to the system beeper.
func NewAlarm(interval, timeout time.Duration, chime func()) *Alarm {
	if chime == nil {
		chime = func() { _ = Chime(880, 180) }
	}
	return &Alarm{interval: interval, timeout: timeout, chime: chime}
}

// Start opens an alert window, striking once right away and then every
// interval until Stop or the timeout.
func (a *Alarm) Start() {
	a.mu.Lock()
	if a.stop != nil {
		close(a.stop)
	}
	stop := make(chan struct{})
	a.stop = stop
	a.mu.Unlock()

	go a.run(stop)
}

// Stop silences the current window. Safe to call when idle.
func (a *Alarm) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}

// Ringing reports whether an alert window is open.
func (a *Alarm) Ringing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

func (a *Alarm) run(stop chan struct{}) {
	a.chime()

	tick := time.NewTicker(a.interval)
	defer tick.Stop()
	expire := time.NewTimer(a.timeout)
	defer expire.Stop()

	for {
		select {
		case <-stop:
			return
		case <-expire.C:
			a.finish(stop)
			return
		case <-tick.C:
			a.chime()
		}
	}
}

// finish clears the window unless a newer one has replaced it.
func (a *Alarm) finish(stop chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop == stop {
		a.stop = nil
	}
}
