// Package retry drives one task through a bounded attempt loop, feeding
// validation errors back into subsequent prompts.
package retry

// DefaultMaxAttempts matches the batch default: one retry after the
// first failure.
const DefaultMaxAttempts = 2

// Status is the retry state machine phase.
type Status int

const (
	Attempting Status = iota
	Succeeded
	Exhausted
)

// State tracks one task through the loop. Owned by the controller for the
// duration of the task, discarded afterwards.
type State struct {
	Status      Status
	Attempt     int // 1-based
	MaxAttempts int
	LastErrors  []string
}

// AttemptOutcome summarizes a single attempt for the transition function.
type AttemptOutcome struct {
	OK     bool
	Errors []string
}

// Start returns the state for attempt 1.
func Start(maxAttempts int) State {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return State{Status: Attempting, Attempt: 1, MaxAttempts: maxAttempts}
}

// Next is the pure transition function. Invocation-level failures and
// validation failures both consume an attempt.
func Next(s State, out AttemptOutcome) State {
	if s.Status != Attempting {
		return s
	}
	if out.OK {
		s.Status = Succeeded
		s.LastErrors = nil
		return s
	}
	s.LastErrors = out.Errors
	if s.Attempt >= s.MaxAttempts {
		s.Status = Exhausted
		return s
	}
	s.Attempt++
	return s
}
