// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typespeed/internal/model"
	"github.com/verte-zerg/typespeed/internal/session"
	"github.com/verte-zerg/typespeed/internal/stats"
	"github.com/verte-zerg/typespeed/internal/wordlist"
)

var (
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	lowTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	inputStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

type tickMsg struct {
	ticket session.Ticket
}

// teaScheduler turns countdown requests into commands that come back through Update.
type teaScheduler struct {
	pending []tea.Cmd
	tick    func(time.Duration, session.Ticket) tea.Cmd
}

// Schedule implements session.Scheduler.
func (s *teaScheduler) Schedule(delay time.Duration, t session.Ticket) {
	s.pending = append(s.pending, s.tick(delay, t))
}

func (s *teaScheduler) flush(extra ...tea.Cmd) tea.Cmd {
	cmds := append(s.pending, extra...)
	s.pending = nil
	return tea.Batch(cmds...)
}

func tickCmd(delay time.Duration, t session.Ticket) tea.Cmd {
	if delay <= 0 {
		return func() tea.Msg { return tickMsg{ticket: t} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return tickMsg{ticket: t}
	})
}

// Model implements the Bubble Tea typing UI and renders what the session
// controller pushes to it.
type Model struct {
	ctrl  *session.Controller
	sched *teaScheduler
	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	text         string
	remaining    int
	cpm          int
	wpm          int
	inputEnabled bool
	errMsg       string

	result     *model.ScoreResult
	showResult bool
}

// NewModel constructs the typing UI and its first session.
func NewModel(cfg model.Config, source wordlist.Source, gen session.TextGenerator, logger *slog.Logger) (*Model, error) {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "start typing..."

	m := &Model{
		sched: &teaScheduler{tick: tickCmd},
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: input,
	}
	ctrl, err := session.NewController(cfg.TimeLimit, source, gen, m.sched, m, logger)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.sched.flush(textinput.Blink)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = m.contentWidth() - 4
		return m, nil
	case tickMsg:
		m.ctrl.Tick(msg.ticket)
		return m, m.sched.flush()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, m.sched.flush(cmd)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.showResult = false
		m.errMsg = ""
		// A failed restart is already on screen through ShowError.
		_ = m.ctrl.Restart()
		return m, m.sched.flush()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case m.showResult && key.Matches(msg, m.keys.Dismiss):
		m.showResult = false
		return m, nil
	}
	if !m.inputEnabled {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.Keystroke(m.input.Value())
	return m, m.sched.flush(cmd)
}

// ShowText implements session.Presenter.
func (m *Model) ShowText(text string) {
	m.text = text
}

// ResetInput implements session.Presenter.
func (m *Model) ResetInput() {
	m.input.Reset()
}

// ShowTime implements session.Presenter.
func (m *Model) ShowTime(remaining int) {
	m.remaining = remaining
}

// ShowStats implements session.Presenter.
func (m *Model) ShowStats(cpm, wpm int) {
	m.cpm = cpm
	m.wpm = wpm
}

// SetInputEnabled implements session.Presenter.
func (m *Model) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	if enabled {
		m.sched.pending = append(m.sched.pending, m.input.Focus())
		return
	}
	m.input.Blur()
}

// ShowResult implements session.Presenter.
func (m *Model) ShowResult(res model.ScoreResult) {
	m.result = &res
	m.showResult = true
}

// ShowError implements session.Presenter.
func (m *Model) ShowError(err error) {
	m.errMsg = err.Error()
}

// LastResult returns the most recent finished attempt, if any.
func (m *Model) LastResult() (model.ScoreResult, bool) {
	if m.result == nil {
		return model.ScoreResult{}, false
	}
	return *m.result, true
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{m.renderStatus(), ""}
	if m.showResult && m.result != nil {
		sections = append(sections, m.renderResult())
	} else {
		sections = append(sections, textStyle.Width(width).Render(wrapText(m.text, width)))
	}
	sections = append(sections, "", m.renderInput())
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	w := int(float64(m.width) * 0.70)
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) renderStatus() string {
	timeStyle := valueStyle
	if m.remaining <= 3 && m.ctrl != nil && m.ctrl.Phase() == session.Running {
		timeStyle = lowTimeStyle
	}
	segments := []string{
		labelStyle.Render("Corrected CPM: ") + valueStyle.Render(fmt.Sprintf("%d", m.cpm)),
		labelStyle.Render("WPM: ") + valueStyle.Render(fmt.Sprintf("%d", m.wpm)),
		labelStyle.Render("Time Left: ") + timeStyle.Render(fmt.Sprintf("%d", m.remaining)),
	}
	return strings.Join(segments, "   ")
}

func (m *Model) renderInput() string {
	if !m.inputEnabled {
		return inputStyle.Render(disabledStyle.Render(m.input.Value()))
	}
	return inputStyle.Render(m.input.View())
}

func (m *Model) renderResult() string {
	res := m.result
	lines := []string{
		valueStyle.Render("Results"),
		"",
		fmt.Sprintf("CPM: %d", res.CPM),
		fmt.Sprintf("WPM: %d", res.WPM),
	}
	if len(res.Timeline) > 0 {
		lines = append(lines, labelStyle.Render("Pace: ")+stats.Sparkline(res.Timeline))
	}
	lines = append(lines, "", labelStyle.Render("enter: close · ctrl+r: restart"))
	return modalStyle.Render(strings.Join(lines, "\n"))
}
