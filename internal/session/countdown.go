package session

import "time"

// Phase is the countdown lifecycle position.
type Phase int

const (
	// Idle means no tick is scheduled and time has not started.
	Idle Phase = iota
	// Running means exactly one tick is pending.
	Running
	// Expired means time ran out; nothing is scheduled until the next reset.
	Expired
)

// String returns the human-readable name of the phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Ticket identifies one scheduled tick. Only the most recently issued ticket is live.
type Ticket uint64

// Scheduler delivers Tick(t) back to the session owner after delay, on the
// same goroutine that handles every other session event.
type Scheduler interface {
	Schedule(delay time.Duration, t Ticket)
}

// Step reports what a tick did.
type Step int

const (
	// StepIgnored is a stale or unexpected tick.
	StepIgnored Step = iota
	// StepArmed is the zero-delay tick that follows Start.
	StepArmed
	// StepDecremented means one second elapsed and time remains.
	StepDecremented
	// StepExpired means the last second elapsed.
	StepExpired
)

const tickInterval = time.Second

// Countdown decrements State.Remaining once per second after Start.
type Countdown struct {
	sched  Scheduler
	state  *State
	phase  Phase
	armed  bool
	ticket Ticket
}

// NewCountdown returns an idle countdown with no bound state.
func NewCountdown(sched Scheduler) *Countdown {
	return &Countdown{sched: sched}
}

// Phase returns the current lifecycle position.
func (c *Countdown) Phase() Phase {
	return c.phase
}

// Bind cancels any pending tick and attaches st, restoring its full time.
func (c *Countdown) Bind(st *State) {
	c.Cancel()
	c.state = st
	if st != nil {
		st.Remaining = st.TimeLimit
	}
}

// Cancel invalidates the pending tick and returns to Idle.
func (c *Countdown) Cancel() {
	c.ticket++
	c.phase = Idle
	c.armed = false
	if c.state != nil {
		c.state.Running = false
	}
}

// Start moves Idle to Running. It reports false when the countdown is already
// running, has expired, or has no time left.
func (c *Countdown) Start() bool {
	if c.phase != Idle || c.state == nil || c.state.Remaining <= 0 {
		return false
	}
	c.phase = Running
	c.state.Running = true
	c.schedule(0)
	return true
}

// Tick advances the countdown if t is the live ticket.
func (c *Countdown) Tick(t Ticket) Step {
	if c.phase != Running || t != c.ticket {
		return StepIgnored
	}
	if !c.armed {
		c.armed = true
		c.schedule(tickInterval)
		return StepArmed
	}
	c.state.Remaining--
	if c.state.Remaining > 0 {
		c.schedule(tickInterval)
		return StepDecremented
	}
	c.state.Remaining = 0
	c.state.Running = false
	c.phase = Expired
	return StepExpired
}

func (c *Countdown) schedule(delay time.Duration) {
	c.ticket++
	c.sched.Schedule(delay, c.ticket)
}
