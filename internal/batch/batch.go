// Package batch fans independent generation tasks out to the agent under a
// bounded concurrency budget.
package batch

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jberk/mocksmith/internal/invoker"
	"github.com/jberk/mocksmith/internal/retry"
)

// Task is one independent unit of work: one prompt, one expected artifact.
// Immutable once constructed; identity is ID (logging and correlation only).
type Task struct {
	ID     string
	Prompt string
	Opts   invoker.Options
	// Accept validates output for this task's artifact kind. Nil accepts
	// anything the invoker returns.
	Accept retry.Acceptor
}

// Result is the terminal outcome for one task. Exactly one of Output or Err
// is meaningful, except after exhausted retries where Output is empty and
// Err carries the last attempt's failures.
type Result struct {
	TaskID    string
	Output    string
	Extracted bool
	Attempts  int
	Err       string
	LastRaw   string // final rejected output, for best-effort salvage
	Duration  time.Duration
}

// OK reports whether the task produced an accepted artifact.
func (r Result) OK() bool { return r.Err == "" }

// Runner executes batches. The concurrency limit is admission control for
// expensive agent processes, not a fairness scheduler.
type Runner struct {
	Invoker     invoker.Invoker
	MaxAttempts int
	// NewInvoker, when set, supplies a per-task invoker (e.g. one with a
	// per-task transcript attached). Falls back to Invoker.
	NewInvoker func(t Task) invoker.Invoker
	// OnRetry is forwarded to each task's retry controller.
	OnRetry func(t Task, attempt int, errs []string)
}

// RunAll executes every task with at most limit in flight. Results align
// with the input by index regardless of completion order. One task's
// failure never aborts siblings: failures come back as data.
func (r *Runner) RunAll(ctx context.Context, tasks []Task, limit int) []Result {
	if limit <= 0 || limit > len(tasks) {
		limit = max(1, len(tasks))
	}

	results := make([]Result, len(tasks))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, t := range tasks {
		g.Go(func() error {
			results[i] = r.RunOne(ctx, t)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors
	return results
}

// RunOne executes a single task through the retry controller.
func (r *Runner) RunOne(ctx context.Context, t Task) Result {
	inv := r.Invoker
	if r.NewInvoker != nil {
		inv = r.NewInvoker(t)
	}

	c := &retry.Controller{Invoker: inv, Accept: t.Accept, MaxAttempts: r.MaxAttempts}
	if r.OnRetry != nil {
		c.OnRetry = func(attempt int, errs []string) { r.OnRetry(t, attempt, errs) }
	}

	start := time.Now()
	res := c.Do(ctx, t.Prompt, t.Opts)
	out := Result{
		TaskID:    t.ID,
		Output:    res.Output,
		Extracted: res.Extracted,
		Attempts:  res.Attempts,
		LastRaw:   res.LastRaw,
		Duration:  time.Since(start),
	}
	if !res.OK() {
		out.Err = strings.Join(res.Errors, "; ")
	}
	return out
}
