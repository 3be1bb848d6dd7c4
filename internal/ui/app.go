package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aji-kb/pomodoro-app/internal/config"
	"github.com/aji-kb/pomodoro-app/internal/db"
	"github.com/aji-kb/pomodoro-app/internal/notify"
	"github.com/aji-kb/pomodoro-app/internal/timer"
	"github.com/aji-kb/pomodoro-app/internal/version"
)

type Model struct {
	cfg   config.Config
	theme Theme
	keys  keyMap

	// time & tz
	loc    *time.Location
	now    time.Time
	dayKey string

	// storage; nil when the database could not be opened
	dbh *sql.DB

	eng   *timer.Engine
	alarm *notify.Alarm

	// tickSeq invalidates tick chains left over from a previous run
	tickSeq int

	sessionStart time.Time // wall time of the current run's first start

	// layout
	width, height int
	showHelp      bool
	status        string

	progress progress.Model
	help     help.Model
}

func NewModel(cfg config.Config, dbh *sql.DB) Model {
	eng := timer.New(timer.Config{
		Focus:      cfg.Durations.Focus,
		ShortBreak: cfg.Durations.ShortBreak,
		LongBreak:  cfg.Durations.LongBreak,
	})
	alarm := notify.NewAlarm(cfg.Alert.Interval, cfg.Alert.Timeout, func() {
		_ = notify.Chime(cfg.Alert.FreqHz, cfg.Alert.ChimeMs)
	})

	now := time.Now()
	loc := cfg.Location()
	m := Model{
		cfg:    cfg,
		theme:  DefaultTheme,
		keys:   keys,
		loc:    loc,
		now:    now,
		dayKey: db.DayKey(now.In(loc)),
		dbh:    dbh,
		eng:    eng,
		alarm:  alarm,
		help:   help.New(),
	}
	return m.retint()
}

// Run wires config, storage and the program together and blocks until quit.
func Run() error {
	cfg, _ := config.Load()

	// The widget stays usable without history when storage is broken.
	dbh, err := db.Open()
	if err != nil {
		dbh = nil
	}
	if dbh != nil {
		defer func() { _ = dbh.Close() }()
	}

	m := NewModel(cfg, dbh)
	defer m.alarm.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

type tickMsg struct {
	seq int
	now time.Time
}

type countLoadedMsg struct {
	count int
}

type savedMsg struct{}

func (m Model) tickCmd() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.cfg.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg{seq: seq, now: t}
	})
}

func (m Model) loadCountCmd(day string) tea.Cmd {
	dbh := m.dbh
	return func() tea.Msg {
		if dbh == nil {
			return countLoadedMsg{}
		}
		n, err := db.CompletedSessions(dbh, day)
		if err != nil {
			return countLoadedMsg{}
		}
		return countLoadedMsg{count: n}
	}
}

func (m Model) saveCountCmd(key string, count int) tea.Cmd {
	dbh := m.dbh
	return func() tea.Msg {
		if dbh != nil {
			_ = db.SetCompletedSessions(dbh, key, count)
		}
		return savedMsg{}
	}
}

func (m Model) logSessionCmd(mode timer.Mode, completed time.Time) tea.Cmd {
	dbh := m.dbh
	start := m.sessionStart
	dur := m.eng.Duration(mode)
	if start.IsZero() {
		start = completed.Add(-dur)
	}
	name := modeSlug(mode)
	return func() tea.Msg {
		if dbh != nil {
			_ = db.LogSession(dbh, name, start, completed, int(dur/time.Second))
		}
		return savedMsg{}
	}
}

func modeSlug(mode timer.Mode) string {
	switch mode {
	case timer.ModeShortBreak:
		return "short_break"
	case timer.ModeLongBreak:
		return "long_break"
	default:
		return "focus"
	}
}

func nextTab(mode timer.Mode) timer.Mode {
	switch mode {
	case timer.ModeFocus:
		return timer.ModeShortBreak
	case timer.ModeShortBreak:
		return timer.ModeLongBreak
	default:
		return timer.ModeFocus
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCountCmd(m.dayKey)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		m.now = msg.now

		var cmds []tea.Cmd
		if dk := db.DayKey(msg.now.In(m.loc)); dk != m.dayKey {
			m.dayKey = dk
			m.eng.SetDailyCompleted(0)
			cmds = append(cmds, m.loadCountCmd(dk))
		}

		if m.eng.Running() {
			if ev, fired := m.eng.Tick(msg.now); fired {
				nm, cmd := m.finishSession(ev, msg.now)
				return nm, tea.Batch(append(cmds, cmd)...)
			}
			cmds = append(cmds, m.tickCmd())
		} else if m.alarm.Ringing() {
			// keep rendering so the banner clears when the window times out
			cmds = append(cmds, m.tickCmd())
		}
		return m, tea.Batch(cmds...)

	case countLoadedMsg:
		if msg.count > m.eng.DailyCompleted() {
			m.eng.SetDailyCompleted(msg.count)
		}
		return m, nil

	case savedMsg:
		return m, nil

	case tea.FocusMsg:
		// regained visibility; settle any expiry that happened meanwhile
		m.now = time.Now()
		if m.eng.Running() {
			if ev, fired := m.eng.Tick(m.now); fired {
				return m.finishSession(ev, m.now)
			}
		}
		return m, nil

	case tea.BlurMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = m.progressWidth()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// any keypress quiets an open alert window
	if m.alarm.Ringing() {
		m.alarm.Stop()
		if key.Matches(msg, m.keys.Dismiss) {
			m.status = ""
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.alarm.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.StartPause):
		now := time.Now()
		m.now = now
		if m.eng.Running() {
			m.eng.Pause(now)
			m.status = "Paused"
			return m, nil
		}
		if m.sessionStart.IsZero() {
			m.sessionStart = now
		}
		m.eng.Start(now)
		m.status = ""
		m.tickSeq++
		return m, m.tickCmd()

	case key.Matches(msg, m.keys.Reset):
		m.eng.Reset()
		m.sessionStart = time.Time{}
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		return m.switchTo(timer.ModeFocus), nil

	case key.Matches(msg, m.keys.ShortBreak):
		return m.switchTo(timer.ModeShortBreak), nil

	case key.Matches(msg, m.keys.LongBreak):
		return m.switchTo(timer.ModeLongBreak), nil

	case key.Matches(msg, m.keys.Cycle):
		return m.switchTo(nextTab(m.eng.Mode())), nil
	}

	return m, nil
}

func (m Model) switchTo(target timer.Mode) Model {
	m.eng.Switch(target)
	m.sessionStart = time.Time{}
	m.status = ""
	return m.retint()
}

// finishSession handles an expiry event: ring, notify, persist, log.
func (m Model) finishSession(ev timer.Event, now time.Time) (Model, tea.Cmd) {
	// a resync can settle an expiry while the run's tick callback is
	// still in flight; renumber so only the chain scheduled here survives
	m.tickSeq++

	var cmds []tea.Cmd

	if m.cfg.Alert.Enabled {
		m.alarm.Start()
		// keep a render chain alive for the alert banner
		cmds = append(cmds, m.tickCmd())
	}
	m.status = ev.Message

	if ev.FocusCompleted {
		dk := db.DayKey(now.In(m.loc))
		if dk != m.dayKey {
			// the day rolled over mid-session; this completion opens the new day
			m.dayKey = dk
			m.eng.SetDailyCompleted(1)
			ev.Daily = 1
		}
		cmds = append(cmds, m.saveCountCmd(dk, ev.Daily))
	}

	if m.cfg.Notifications.Enabled {
		if ev.FocusCompleted {
			title, msg := notify.FormatFocusComplete(ev.Daily)
			_ = notify.Info(title, msg)
			if ev.Daily == m.cfg.DailyGoal {
				title, msg = notify.FormatGoalReached(m.cfg.DailyGoal)
				_ = notify.Info(title, msg)
			}
		} else {
			title, msg := notify.FormatBreakComplete()
			_ = notify.Info(title, msg)
		}
	}

	if m.cfg.AutoLog {
		cmds = append(cmds, m.logSessionCmd(ev.From, now))
	}

	m.sessionStart = time.Time{}
	m = m.retint()
	return m, tea.Batch(cmds...)
}

// retint rebuilds the progress bar in the current mode's accent.
func (m Model) retint() Model {
	m.progress = progress.New(
		progress.WithSolidFill(m.eng.Mode().Info().Accent),
		progress.WithoutPercentage(),
	)
	m.progress.Width = m.progressWidth()
	return m
}

func (m Model) progressWidth() int {
	w := m.width - 24
	if w < 16 {
		w = 16
	}
	if w > 40 {
		w = 40
	}
	return w
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	info := m.eng.Mode().Info()
	accent := lipgloss.Color(info.Accent)
	snap := m.eng.Snapshot(m.now)

	title := m.theme.Title.Render("🍅 Pomodoro")
	right := m.theme.Hint.Render(m.now.In(m.loc).Format("Mon Jan 2") + "  " + version.GetVersion())
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", gap), right)

	clock := m.theme.Clock.Foreground(accent).Render(timer.FormatClock(snap.Remaining))
	state := m.theme.Label.Render(m.stateLabel(snap))

	card := m.theme.Border.BorderForeground(accent).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.renderTabs(),
			"",
			clock,
			state,
			"",
			m.progress.ViewAs(snap.Progress),
			"",
			m.renderCounter(snap),
		),
	)

	rows := []string{top, "", card}
	if m.alarm.Ringing() {
		rows = append(rows, "", m.theme.Error.Render("⏰ Time's up!  press d to dismiss"))
	} else if m.status != "" {
		rows = append(rows, "", m.theme.Value.Render(m.status))
	}
	rows = append(rows, "", m.help.View(m.keys))

	ui := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, ui)
}

func (m Model) renderTabs() string {
	var tabs []string
	for _, mode := range timer.Modes() {
		info := mode.Info()
		st := m.theme.Tab.Faint(true)
		if mode == m.eng.Mode() {
			st = m.theme.Tab.Bold(true).Underline(true).Foreground(lipgloss.Color(info.Accent))
		}
		tabs = append(tabs, st.Render(info.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) stateLabel(snap timer.Snapshot) string {
	switch {
	case snap.Running:
		return "running"
	case snap.Remaining < m.eng.Duration(snap.Mode):
		return "paused"
	default:
		return "ready"
	}
}

func (m Model) renderCounter(snap timer.Snapshot) string {
	st := m.theme.Value
	if snap.Daily >= m.cfg.DailyGoal {
		st = m.theme.Success
	}
	today := st.Render(fmt.Sprintf("Today %d/%d", snap.Daily, m.cfg.DailyGoal))
	if dots := goalDots(snap.Daily, m.cfg.DailyGoal); dots != "" {
		return lipgloss.JoinHorizontal(lipgloss.Top, today, "  ", m.theme.Hint.Render(dots))
	}
	return today
}

func goalDots(done, goal int) string {
	if goal > 16 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < goal; i++ {
		if i < done {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	if done > goal {
		fmt.Fprintf(&b, " +%d", done-goal)
	}
	return b.String()
}
