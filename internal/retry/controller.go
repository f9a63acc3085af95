package retry

import (
	"context"

	"github.com/jberk/mocksmith/internal/invoker"
	"github.com/jberk/mocksmith/internal/prompt"
	"github.com/jberk/mocksmith/internal/validate"
)

// Acceptor decides whether raw agent output is an acceptable artifact.
// A nil acceptor accepts any output the invoker returns.
type Acceptor func(raw string) validate.Outcome

// Result is the terminal outcome of the loop. On success Output holds the
// cleaned artifact; on exhaustion Output is empty, Errors carries the last
// attempt's accumulated failures, and LastRaw keeps the final rejected
// output for best-effort salvage.
type Result struct {
	Output    string
	Extracted bool
	Attempts  int
	Errors    []string
	LastRaw   string
}

// OK reports whether the task produced an accepted artifact.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Controller wraps an invoker and an acceptor in the retry loop.
type Controller struct {
	Invoker     invoker.Invoker
	Accept      Acceptor
	MaxAttempts int
	// OnRetry, when set, is called before each re-attempt with the attempt
	// number about to run and the errors being fed back.
	OnRetry func(attempt int, errs []string)
}

// Do runs one task to completion. Attempt 1 uses promptText verbatim;
// later attempts are prefixed with a feedback block. No backoff, no tier
// change: corrective feedback is the only adaptation.
func (c *Controller) Do(ctx context.Context, promptText string, opts invoker.Options) Result {
	st := Start(c.MaxAttempts)
	var lastRaw string
	for {
		p := promptText
		if st.Attempt > 1 {
			p = prompt.WithFeedback(promptText, st.Attempt-1, st.LastErrors)
		}

		raw, err := c.Invoker.Invoke(ctx, p, opts)
		if raw != "" {
			lastRaw = raw
		}

		var out AttemptOutcome
		var accepted validate.Outcome
		switch {
		case err != nil:
			out = AttemptOutcome{Errors: []string{err.Error()}}
		case c.Accept == nil:
			accepted = validate.Outcome{Valid: true, Content: raw}
			out = AttemptOutcome{OK: true}
		default:
			accepted = c.Accept(raw)
			out = AttemptOutcome{OK: accepted.Valid, Errors: accepted.Errors}
		}

		attempt := st.Attempt
		st = Next(st, out)

		switch st.Status {
		case Succeeded:
			return Result{Output: accepted.Content, Extracted: accepted.Extracted, Attempts: attempt}
		case Exhausted:
			return Result{Attempts: attempt, Errors: st.LastErrors, LastRaw: lastRaw}
		}

		// A cancelled batch stops consuming attempts.
		if ctx.Err() != nil {
			return Result{Attempts: attempt, Errors: st.LastErrors, LastRaw: lastRaw}
		}
		if c.OnRetry != nil {
			c.OnRetry(st.Attempt, st.LastErrors)
		}
	}
}
