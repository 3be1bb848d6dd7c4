// Package timer implements the pomodoro session state machine and its
// drift-corrected countdown arithmetic.
//
// Remaining time is never decremented tick by tick. While a session runs
// the engine keeps an anchor, the wall-clock instant the run began plus
// the remaining time at that instant, and every tick re-derives
//
//	remaining = max(remainingAtStart - (now - startedAt), 0)
//
// from it. Delayed, coalesced, or entirely suspended tick callbacks
// therefore cannot accumulate drift: the first tick after a stall lands
// on the correct value in a single step.
//
// Note: Engine is not goroutine-safe. It is owned by one update loop (the
// TUI program); ticks, key handlers, and focus events all arrive on that
// single logical thread.
package timer

import (
	"fmt"
	"time"
)

// Config overrides the built-in mode durations. Zero or negative values
// keep the fixed defaults from the mode table.
type Config struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// Event describes a countdown that ran to completion: the transition
// taken, whether a focus session finished (and so the counters moved),
// and the alert text handed to the notifier.
type Event struct {
	From           Mode
	To             Mode
	FocusCompleted bool
	Daily          int
	Message        string
}

// Snapshot is an immutable view of the engine for rendering.
type Snapshot struct {
	Mode           Mode
	Remaining      time.Duration
	Running        bool
	Progress       float64 // 0 at full duration, 1 at expiry
	CompletedFocus int
	Daily          int
}

// Engine tracks the live session: mode, remaining time, run status, the
// completion counters, and the anchor that makes remaining time a derived
// quantity. See the package doc for ownership rules.
type Engine struct {
	durations [len(modeTable)]time.Duration

	mode     Mode
	timeLeft time.Duration // authoritative while no anchor is set
	running  bool

	// Anchor pair: both set while running, both cleared otherwise.
	startedAt        time.Time
	remainingAtStart time.Duration

	completedFocus int // process lifetime
	daily          int // persisted per calendar day, seeded at startup
}

// New returns an engine in focus mode at full duration, not running.
func New(cfg Config) *Engine {
	e := &Engine{}
	e.durations[ModeFocus] = orDefault(cfg.Focus, ModeFocus)
	e.durations[ModeShortBreak] = orDefault(cfg.ShortBreak, ModeShortBreak)
	e.durations[ModeLongBreak] = orDefault(cfg.LongBreak, ModeLongBreak)
	e.mode = ModeFocus
	e.timeLeft = e.durations[ModeFocus]
	return e
}

func orDefault(d time.Duration, m Mode) time.Duration {
	if d > 0 {
		return d
	}
	return m.Info().Duration
}

// Start begins or resumes the countdown at now, anchoring the remaining
// time to the wall clock. Calling it while already running is a no-op:
// the existing anchor stays authoritative.
func (e *Engine) Start(now time.Time) {
	if e.running {
		return
	}
	e.startedAt = now
	e.remainingAtStart = e.timeLeft
	e.running = true
}

// Pause freezes the countdown at now. The derived remaining value becomes
// authoritative and the anchor is cleared, so a later Start re-anchors
// from what the user last saw rather than from the stale anchor.
func (e *Engine) Pause(now time.Time) {
	if !e.running {
		return
	}
	e.timeLeft = e.derived(now)
	e.clearAnchor()
	e.running = false
}

// Reset stops the countdown and restores the current mode's full
// duration. The mode itself is unchanged.
func (e *Engine) Reset() {
	e.running = false
	e.clearAnchor()
	e.timeLeft = e.durations[e.mode]
}

// Switch stops the countdown and enters mode at its full duration. It is
// valid in any state, never auto-starts, and switching to the current
// mode behaves like Reset.
func (e *Engine) Switch(mode Mode) {
	if !mode.valid() {
		return
	}
	e.running = false
	e.clearAnchor()
	e.mode = mode
	e.timeLeft = e.durations[mode]
}

// Tick re-derives remaining time from the anchor at now. When the
// countdown has reached zero it fires the expiry transition and reports
// it. At most one expiry fires per run: expiry stops the engine, and a
// stopped engine ticks to nothing.
func (e *Engine) Tick(now time.Time) (Event, bool) {
	if !e.running {
		return Event{}, false
	}
	if e.derived(now) > 0 {
		return Event{}, false
	}
	return e.expire(), true
}

func (e *Engine) expire() Event {
	from := e.mode
	e.running = false
	e.clearAnchor()

	ev := Event{From: from, To: from.next()}
	if from == ModeFocus {
		e.completedFocus++
		e.daily++
		ev.FocusCompleted = true
	}
	ev.Daily = e.daily
	ev.Message = expiryMessage(from)

	e.mode = ev.To
	e.timeLeft = e.durations[ev.To]
	return ev
}

func expiryMessage(from Mode) string {
	if from == ModeFocus {
		return "Focus session complete! Time for a break 🍅"
	}
	return "Break's over! Back to focus 💪"
}

// Remaining reports the time left at now: derived from the anchor while
// running, the stored value otherwise. Never negative.
func (e *Engine) Remaining(now time.Time) time.Duration {
	if e.running {
		return e.derived(now)
	}
	return e.timeLeft
}

func (e *Engine) derived(now time.Time) time.Duration {
	rem := e.remainingAtStart - now.Sub(e.startedAt)
	if rem < 0 {
		return 0
	}
	return rem
}

func (e *Engine) clearAnchor() {
	e.startedAt = time.Time{}
	e.remainingAtStart = 0
}

// Mode reports the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Running reports whether the countdown is live.
func (e *Engine) Running() bool { return e.running }

// Duration reports the full duration configured for a mode.
func (e *Engine) Duration(m Mode) time.Duration {
	if !m.valid() {
		return 0
	}
	return e.durations[m]
}

// CompletedFocus reports focus sessions completed this process lifetime.
func (e *Engine) CompletedFocus() int { return e.completedFocus }

// DailyCompleted reports the in-memory daily counter.
func (e *Engine) DailyCompleted() int { return e.daily }

// SetDailyCompleted replaces the daily counter: seeding it from the
// store at startup, and resetting it when the calendar day rolls over.
func (e *Engine) SetDailyCompleted(n int) {
	if n < 0 {
		n = 0
	}
	e.daily = n
}

// Snapshot captures the rendering view at now.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	rem := e.Remaining(now)
	full := e.durations[e.mode]
	var progress float64
	if full > 0 {
		progress = float64(full-rem) / float64(full)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return Snapshot{
		Mode:           e.mode,
		Remaining:      rem,
		Running:        e.running,
		Progress:       progress,
		CompletedFocus: e.completedFocus,
		Daily:          e.daily,
	}
}

// FormatClock renders a remaining duration as MM:SS. Partial seconds
// round up, so the clock never reads 00:00 while time remains and reads
// the full duration exactly at reset.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
