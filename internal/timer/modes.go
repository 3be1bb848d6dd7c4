package timer

import "time"

// Mode identifies one of the three fixed countdown modes.
type Mode int

const (
	ModeFocus Mode = iota
	ModeShortBreak
	ModeLongBreak
)

// ModeInfo is the immutable identity of a mode: display label, full
// duration, and the accent color the presentation layer keys off. The
// table is fixed configuration, never mutated at runtime.
type ModeInfo struct {
	Label    string
	Duration time.Duration
	Accent   string
}

var modeTable = [...]ModeInfo{
	ModeFocus:      {Label: "Focus", Duration: 25 * time.Minute, Accent: "#f38ba8"},
	ModeShortBreak: {Label: "Short Break", Duration: 5 * time.Minute, Accent: "#a6e3a1"},
	ModeLongBreak:  {Label: "Long Break", Duration: 15 * time.Minute, Accent: "#89b4fa"},
}

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}
}

// Info returns the table entry for the mode. Unknown values map to Focus
// so the caller always gets a usable entry.
func (m Mode) Info() ModeInfo {
	if !m.valid() {
		return modeTable[ModeFocus]
	}
	return modeTable[m]
}

func (m Mode) String() string { return m.Info().Label }

func (m Mode) valid() bool { return m >= ModeFocus && m <= ModeLongBreak }

// next is the mode entered automatically on expiry: a finished focus
// session flows into a short break, either break flows back to focus.
// Long break is only ever entered by explicit user choice.
func (m Mode) next() Mode {
	if m == ModeFocus {
		return ModeShortBreak
	}
	return ModeFocus
}
