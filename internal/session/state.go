// Package session runs a single typing test: it owns the attempt state, the
// countdown and the hand-off to scoring once time runs out.
package session

import "github.com/google/uuid"

// DefaultTimeLimit is the test length in seconds.
const DefaultTimeLimit = 10

// State is the mutable data of one attempt. It is replaced wholesale on restart.
type State struct {
	ID        string
	TimeLimit int
	Remaining int
	Running   bool
	Generated string
	Typed     string
	// Samples holds the typed text at the end of every completed second.
	Samples []string
}

func newState(limit int, generated string) *State {
	return &State{
		ID:        uuid.NewString(),
		TimeLimit: limit,
		Remaining: limit,
		Generated: generated,
	}
}

func (s *State) clone() State {
	out := *s
	out.Samples = append([]string(nil), s.Samples...)
	return out
}
