// Package session hosts the Bubble Tea view for a live timer session.
package session

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/pomo/pkg/app"
	"tableflip.dev/pomo/pkg/printers"
	"tableflip.dev/pomo/pkg/timer"
	"tableflip.dev/pomo/pkg/timeutil"
)

var (
	clockStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	helpStyle  = lipgloss.NewStyle().Faint(true).Italic(true)

	phaseStyles = map[timer.Phase]lipgloss.Style{
		timer.Focus:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		timer.Break:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		timer.MicroBreak:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		timer.ForcedBreak: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
)

type tickMsg time.Time

// Model renders the engine state and translates key presses into service
// calls. The service runs its own tickers; the model only polls for display.
type Model struct {
	svc    *app.Service
	state  timer.State
	width  int
	scored bool
}

func New(svc *app.Service) Model {
	return Model{
		svc:   svc,
		state: svc.State(),
		width: 60,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// tick schedules the next display refresh; the cadence tightens as the
// countdown nears zero.
func (m Model) tick() tea.Cmd {
	return tea.Tick(timeutil.UpdateEvery(m.state.TimeLeft), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.state = m.svc.State()
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.svc.Pause()
			return m, tea.Quit
		case " ":
			if m.state.Active {
				m.svc.Pause()
			} else {
				m.svc.Start()
			}
			m.state = m.svc.State()
			return m, nil
		case "s":
			m.svc.SkipToNext()
			m.state = m.svc.State()
			return m, nil
		case "r":
			m.svc.Reset()
			m.state = m.svc.State()
			m.scored = false
			return m, nil
		case "1", "2", "3", "4", "5":
			score := int(msg.String()[0] - '0')
			if err := m.svc.SubmitEfficiencyScore(score); err == nil {
				m.scored = true
				m.state = m.svc.State()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	phase := phaseStyles[m.state.Phase]
	b.WriteString("\n  ")
	b.WriteString(phase.Render(m.state.Phase.Label()))
	if !m.state.Active {
		b.WriteString(faintStyle.Render("  (paused)"))
	}
	b.WriteString("\n\n  ")
	b.WriteString(clockStyle.Render(timeutil.Clock(m.state.TimeLeft)))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  of %s", timeutil.Clock(m.state.TotalTime))))
	b.WriteString("\n  ")

	width := m.width - 8
	if width > 40 {
		width = 40
	}
	if width < 10 {
		width = 10
	}
	b.WriteString(printers.Meter(m.state.TimeLeft, m.state.TotalTime, width))
	b.WriteString(faintStyle.Render(fmt.Sprintf(" %3.0f%%", timeutil.Progress(m.state.TimeLeft, m.state.TotalTime))))

	b.WriteString("\n\n  ")
	b.WriteString(faintStyle.Render(fmt.Sprintf(
		"today %s focused · %d micro-breaks · focus ×%.2f",
		timeutil.FormatDuration(time.Duration(m.state.TodayFocus)*time.Second),
		m.state.MicroBreakCount,
		m.state.FocusMultiplier,
	)))

	b.WriteString("\n\n  ")
	hint := "space pause · s skip · r reset · 1-5 score · q quit"
	if m.scored {
		hint = "score recorded · " + hint
	}
	b.WriteString(helpStyle.Render(hint))
	b.WriteString("\n")

	return b.String()
}
