package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typespeed/internal/generator"
	"github.com/verte-zerg/typespeed/internal/wordlist"
)

type harness struct {
	ctrl   *Controller
	sched  *fakeScheduler
	view   *fakePresenter
	source *staticSource
}

func newHarness(t *testing.T, limit int) *harness {
	t.Helper()
	h := &harness{
		sched:  &fakeScheduler{},
		view:   &fakePresenter{},
		source: &staticSource{words: []string{"the", "quick", "brown", "fox"}},
	}
	ctrl, err := NewController(limit, h.source, generator.New(), h.sched, h.view, nil)
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

// drain delivers ticks until nothing is scheduled and returns how many fired.
func (h *harness) drain() int {
	fired := 0
	for {
		n := h.sched.fire(h.ctrl.Tick)
		if n == 0 {
			return fired
		}
		fired += n
	}
}

func TestNewControllerPreparesSession(t *testing.T) {
	h := newHarness(t, 10)

	st := h.ctrl.Snapshot()
	assert.Equal(t, "the quick brown fox", st.Generated)
	assert.Equal(t, "the quick brown fox", h.view.text)
	assert.Equal(t, 10, st.TimeLimit)
	assert.Equal(t, 10, st.Remaining)
	assert.False(t, st.Running)
	assert.Empty(t, st.Typed)
	assert.NotEmpty(t, st.ID)
	assert.True(t, h.view.inputEnabled)
	assert.Equal(t, Idle, h.ctrl.Phase())
	assert.Zero(t, h.sched.total)
}

func TestKeystrokeStartsCountdownOnce(t *testing.T) {
	h := newHarness(t, 10)

	for _, text := range []string{"t", "th", "the", "the ", "the q"} {
		h.ctrl.Keystroke(text)
	}
	assert.Equal(t, 1, h.sched.total)
	assert.Equal(t, Running, h.ctrl.Phase())
	assert.True(t, h.ctrl.Snapshot().Running)
	assert.Equal(t, "the q", h.ctrl.Snapshot().Typed)
}

func TestExpiryScoresTypedText(t *testing.T) {
	h := newHarness(t, 10)

	h.ctrl.Keystroke("the quik brown fox")
	fired := h.drain()

	assert.Equal(t, 11, fired, "one arming tick plus one per second")
	require.Len(t, h.view.results, 1)
	res := h.view.results[0]
	assert.Equal(t, 11, res.Correct)
	assert.Equal(t, 66, res.CPM)
	assert.Equal(t, 13, res.WPM)
	assert.Equal(t, h.ctrl.Snapshot().ID, res.SessionID)
	assert.Len(t, res.Words, 4)
	assert.Len(t, res.Timeline, 10)
	assert.Equal(t, 66, h.view.cpm)
	assert.Equal(t, 13, h.view.wpm)
	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, h.view.times)

	assert.False(t, h.view.inputEnabled)
	assert.Equal(t, Expired, h.ctrl.Phase())
	st := h.ctrl.Snapshot()
	assert.Equal(t, 0, st.Remaining)
	assert.False(t, st.Running)
	assert.Len(t, st.Samples, 10)
}

func TestInputAfterExpiryIsIgnored(t *testing.T) {
	h := newHarness(t, 2)
	h.ctrl.Keystroke("the quick")
	h.drain()

	h.ctrl.Keystroke("the quick brown fox")
	assert.Equal(t, "the quick", h.ctrl.Snapshot().Typed)
	assert.Zero(t, h.drain())
	assert.Len(t, h.view.results, 1)
}

func TestTypingPastGeneratedTextDoesNotFail(t *testing.T) {
	h := newHarness(t, 10)
	h.ctrl.Keystroke("the quick brown fox extra words here")
	h.drain()

	require.Len(t, h.view.results, 1)
	assert.Equal(t, 96, h.view.results[0].CPM)
	assert.Equal(t, 19, h.view.results[0].WPM)
}

func TestRestartResetsSession(t *testing.T) {
	h := newHarness(t, 10)
	first := h.ctrl.Snapshot().ID

	h.ctrl.Keystroke("the")
	h.sched.fire(h.ctrl.Tick)
	h.sched.fire(h.ctrl.Tick)
	require.Equal(t, 9, h.ctrl.Snapshot().Remaining)

	require.NoError(t, h.ctrl.Restart())

	st := h.ctrl.Snapshot()
	assert.Equal(t, 10, st.Remaining)
	assert.False(t, st.Running)
	assert.Empty(t, st.Typed)
	assert.Empty(t, st.Samples)
	assert.NotEqual(t, first, st.ID)
	assert.Equal(t, "the quick brown fox", st.Generated)
	assert.Equal(t, 2, h.source.loads)
	assert.Equal(t, 2, h.view.resets)
	assert.Zero(t, h.view.cpm)
	assert.Zero(t, h.view.wpm)
	assert.True(t, h.view.inputEnabled)
	assert.Equal(t, Idle, h.ctrl.Phase())
}

func TestStaleTickAfterRestartIsIgnored(t *testing.T) {
	h := newHarness(t, 10)
	h.ctrl.Keystroke("the")
	h.sched.fire(h.ctrl.Tick)
	require.Len(t, h.sched.pending, 1)

	require.NoError(t, h.ctrl.Restart())
	assert.Equal(t, 1, h.drain())

	st := h.ctrl.Snapshot()
	assert.Equal(t, 10, st.Remaining)
	assert.False(t, st.Running)
	assert.Empty(t, h.view.results)

	h.ctrl.Keystroke("the quick brown fox")
	assert.Equal(t, 11, h.drain())
	require.Len(t, h.view.results, 1)
	assert.Equal(t, 96, h.view.results[0].CPM)
}

func TestRestartAfterExpiry(t *testing.T) {
	h := newHarness(t, 1)
	h.ctrl.Keystroke("the")
	h.drain()
	require.Equal(t, Expired, h.ctrl.Phase())

	require.NoError(t, h.ctrl.Restart())
	assert.True(t, h.ctrl.InputEnabled())
	h.ctrl.Keystroke("the")
	assert.Equal(t, Running, h.ctrl.Phase())
}

func TestRestartWithoutActiveTimer(t *testing.T) {
	h := newHarness(t, 10)
	require.NoError(t, h.ctrl.Restart())
	assert.Zero(t, h.sched.total)
	assert.Equal(t, 10, h.ctrl.Snapshot().Remaining)
}

func TestNewControllerLoadFailure(t *testing.T) {
	view := &fakePresenter{}
	src := &staticSource{err: wordlist.ErrEmptyResource}
	ctrl, err := NewController(10, src, generator.New(), &fakeScheduler{}, view, nil)
	require.Error(t, err)
	assert.Nil(t, ctrl)
	assert.True(t, errors.Is(err, wordlist.ErrEmptyResource))
	require.Len(t, view.errs, 1)
	assert.False(t, view.inputEnabled)
}

func TestRestartLoadFailureBlocksSession(t *testing.T) {
	h := newHarness(t, 10)
	h.ctrl.Keystroke("the")
	h.sched.fire(h.ctrl.Tick)

	h.source.err = errBroken
	err := h.ctrl.Restart()
	require.ErrorIs(t, err, errBroken)
	assert.False(t, h.ctrl.InputEnabled())
	assert.Equal(t, Idle, h.ctrl.Phase())

	h.ctrl.Keystroke("the quick")
	h.drain()
	assert.Equal(t, Idle, h.ctrl.Phase())
	assert.Empty(t, h.view.results)
	assert.Empty(t, h.ctrl.Snapshot().Generated)

	h.source.err = nil
	require.NoError(t, h.ctrl.Restart())
	assert.True(t, h.ctrl.InputEnabled())
}

func TestDefaultTimeLimit(t *testing.T) {
	h := newHarness(t, 0)
	assert.Equal(t, DefaultTimeLimit, h.ctrl.Snapshot().TimeLimit)
}
