package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/verte-zerg/typespeed/internal/model"
	"github.com/verte-zerg/typespeed/internal/stats"
	"github.com/verte-zerg/typespeed/internal/wordlist"
)

const timelineWindow = 3

// Presenter renders session output. It never reads or writes State directly.
type Presenter interface {
	ShowText(text string)
	ResetInput()
	ShowTime(remaining int)
	ShowStats(cpm, wpm int)
	SetInputEnabled(enabled bool)
	ShowResult(res model.ScoreResult)
	ShowError(err error)
}

// TextGenerator turns a word list into the sample text.
type TextGenerator interface {
	Text(words []string) string
}

// Controller orchestrates one test at a time. All methods must be called from
// a single goroutine.
type Controller struct {
	limit     int
	source    wordlist.Source
	gen       TextGenerator
	countdown *Countdown
	view      Presenter
	logger    *slog.Logger

	state        *State
	inputEnabled bool
}

// NewController loads the word list and prepares the first session. A word
// list failure is returned and no session is started.
func NewController(limit int, source wordlist.Source, gen TextGenerator, sched Scheduler, view Presenter, logger *slog.Logger) (*Controller, error) {
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		limit:     limit,
		source:    source,
		gen:       gen,
		countdown: NewCountdown(sched),
		view:      view,
		logger:    logger,
	}
	if err := c.begin(); err != nil {
		return nil, err
	}
	return c, nil
}

// Keystroke records the current input text and starts the countdown on the
// first keystroke of a session.
func (c *Controller) Keystroke(text string) {
	if !c.inputEnabled {
		return
	}
	c.state.Typed = text
	if c.countdown.Start() {
		c.logger.Debug("countdown started", "session", c.state.ID, "limit", c.state.TimeLimit)
	}
}

// Tick handles a scheduled countdown tick.
func (c *Controller) Tick(t Ticket) {
	switch c.countdown.Tick(t) {
	case StepIgnored:
		c.logger.Debug("ignored tick", "ticket", t, "phase", c.countdown.Phase())
	case StepArmed:
	case StepDecremented:
		c.state.Samples = append(c.state.Samples, c.state.Typed)
		c.view.ShowTime(c.state.Remaining)
	case StepExpired:
		c.state.Samples = append(c.state.Samples, c.state.Typed)
		c.view.ShowTime(0)
		c.expire()
	}
}

// Restart stops the countdown and starts a fresh session.
func (c *Controller) Restart() error {
	c.countdown.Cancel()
	if c.state != nil {
		c.logger.Debug("session restarted", "session", c.state.ID)
	}
	return c.begin()
}

// InputEnabled reports whether keystrokes are accepted.
func (c *Controller) InputEnabled() bool {
	return c.inputEnabled
}

// Phase returns the countdown phase.
func (c *Controller) Phase() Phase {
	return c.countdown.Phase()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	if c.state == nil {
		return State{TimeLimit: c.limit}
	}
	return c.state.clone()
}

func (c *Controller) begin() error {
	words, err := c.source.Load()
	if err != nil {
		err = fmt.Errorf("failed to load word list from %s: %w", c.source.Describe(), err)
		c.state = nil
		c.countdown.Bind(nil)
		c.setInput(false)
		c.view.ShowError(err)
		c.logger.Error("session blocked", "err", err)
		return err
	}
	st := newState(c.limit, c.gen.Text(words))
	c.countdown.Bind(st)
	c.state = st

	c.view.ShowText(st.Generated)
	c.view.ResetInput()
	c.view.ShowTime(st.Remaining)
	c.view.ShowStats(0, 0)
	c.setInput(true)
	c.logger.Info("session ready", "session", st.ID, "words", len(words), "source", c.source.Describe())
	return nil
}

func (c *Controller) expire() {
	c.setInput(false)
	st := c.state
	res := stats.Score(st.Generated, st.Typed, st.TimeLimit)
	res.SessionID = st.ID
	res.Words = stats.Breakdown(st.Generated, st.Typed)
	res.Timeline = stats.Timeline(st.Generated, st.Samples, timelineWindow)
	c.view.ShowStats(res.CPM, res.WPM)
	c.view.ShowResult(res)
	c.logger.Info("session finished", "session", st.ID, "cpm", res.CPM, "wpm", res.WPM, "correct", res.Correct)
}

func (c *Controller) setInput(enabled bool) {
	c.inputEnabled = enabled
	c.view.SetInputEnabled(enabled)
}
