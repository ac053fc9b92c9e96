package session

import (
	"errors"
	"time"

	"github.com/verte-zerg/typespeed/internal/model"
)

type scheduled struct {
	delay  time.Duration
	ticket Ticket
}

type fakeScheduler struct {
	pending []scheduled
	total   int
}

func (f *fakeScheduler) Schedule(delay time.Duration, t Ticket) {
	f.pending = append(f.pending, scheduled{delay: delay, ticket: t})
	f.total++
}

// fire delivers every pending tick in order and returns how many were delivered.
func (f *fakeScheduler) fire(deliver func(Ticket)) int {
	batch := f.pending
	f.pending = nil
	for _, s := range batch {
		deliver(s.ticket)
	}
	return len(batch)
}

type fakePresenter struct {
	text         string
	times        []int
	cpm, wpm     int
	inputEnabled bool
	resets       int
	results      []model.ScoreResult
	errs         []error
}

func (p *fakePresenter) ShowText(text string)             { p.text = text }
func (p *fakePresenter) ResetInput()                      { p.resets++ }
func (p *fakePresenter) ShowTime(remaining int)           { p.times = append(p.times, remaining) }
func (p *fakePresenter) ShowStats(cpm, wpm int)           { p.cpm, p.wpm = cpm, wpm }
func (p *fakePresenter) SetInputEnabled(enabled bool)     { p.inputEnabled = enabled }
func (p *fakePresenter) ShowResult(res model.ScoreResult) { p.results = append(p.results, res) }
func (p *fakePresenter) ShowError(err error)              { p.errs = append(p.errs, err) }

type staticSource struct {
	words []string
	err   error
	loads int
}

func (s *staticSource) Load() ([]string, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.words...), nil
}

func (s *staticSource) Describe() string { return "static" }

var errBroken = errors.New("broken")
