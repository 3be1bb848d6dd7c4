package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Done(message string) error {
	return beeep.Alert("Pomodoro", message, "")
}

// Chime plays a short tone through the system beeper.
func Chime(freqHz float64, durationMs int) error {
	return beeep.Beep(freqHz, durationMs)
}

func FormatFocusComplete(daily int) (string, string) {
	title := "Focus session complete"
	msg := fmt.Sprintf("That's %d today. Time for a break 🍅", daily)
	return title, msg
}

func FormatBreakComplete() (string, string) {
	return "Break's over", "Back to focus 💪"
}

func FormatGoalReached(goal int) (string, string) {
	title := "Daily goal reached"
	msg := fmt.Sprintf("%d focus sessions today. Nicely done!", goal)
	return title, msg
}
