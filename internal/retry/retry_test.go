package retry

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jberk/mocksmith/internal/invoker"
	"github.com/jberk/mocksmith/internal/validate"
)

// fakeInvoker returns scripted outputs/errors per attempt, no processes.
type fakeInvoker struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	outputs []string
	errs    []error
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string, opts invoker.Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	var out string
	var err error
	if i < len(f.outputs) {
		out = f.outputs[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return out, err
}

// acceptAfter fails attempts 1..k-1 and accepts attempt k.
func acceptAfter(k int) Acceptor {
	n := 0
	return func(raw string) validate.Outcome {
		n++
		if n < k {
			return validate.Outcome{Errors: []string{"not yet"}}
		}
		return validate.Outcome{Valid: true, Content: raw}
	}
}

func TestTransition_SucceedsFirstTry(t *testing.T) {
	st := Start(2)
	require.Equal(t, Attempting, st.Status)
	require.Equal(t, 1, st.Attempt)

	st = Next(st, AttemptOutcome{OK: true})
	require.Equal(t, Succeeded, st.Status)
	require.Nil(t, st.LastErrors)
}

func TestTransition_FailThenRetryThenExhaust(t *testing.T) {
	st := Start(2)
	st = Next(st, AttemptOutcome{Errors: []string{"e1"}})
	require.Equal(t, Attempting, st.Status)
	require.Equal(t, 2, st.Attempt)
	require.Equal(t, []string{"e1"}, st.LastErrors)

	st = Next(st, AttemptOutcome{Errors: []string{"e2"}})
	require.Equal(t, Exhausted, st.Status)
	require.Equal(t, []string{"e2"}, st.LastErrors)

	// Terminal states absorb further input.
	require.Equal(t, st, Next(st, AttemptOutcome{OK: true}))
}

func TestStart_DefaultsMaxAttempts(t *testing.T) {
	require.Equal(t, DefaultMaxAttempts, Start(0).MaxAttempts)
}

func TestDo_SucceedsOnAttemptK(t *testing.T) {
	for k := 1; k <= 3; k++ {
		inv := &fakeInvoker{outputs: []string{"a", "b", "c"}}
		c := &Controller{Invoker: inv, Accept: acceptAfter(k), MaxAttempts: 3}

		res := c.Do(context.Background(), "make it", invoker.Options{})
		require.True(t, res.OK(), "k=%d errors=%v", k, res.Errors)
		require.Equal(t, k, res.Attempts, "k=%d", k)
		require.Equal(t, k, inv.calls)
	}
}

func TestDo_ExhaustsAfterExactlyMaxAttempts(t *testing.T) {
	inv := &fakeInvoker{outputs: []string{"x", "x", "x", "x"}}
	rejectAll := func(raw string) validate.Outcome {
		return validate.Outcome{Errors: []string{"bad shape"}}
	}
	c := &Controller{Invoker: inv, Accept: rejectAll, MaxAttempts: 3}

	res := c.Do(context.Background(), "make it", invoker.Options{})
	require.False(t, res.OK())
	require.Equal(t, 3, res.Attempts)
	require.Equal(t, 3, inv.calls, "never fewer, never more")
	require.Empty(t, res.Output)
	require.Equal(t, []string{"bad shape"}, res.Errors)
	require.Equal(t, "x", res.LastRaw, "final rejected output kept for salvage")
}

func TestDo_FeedbackPrefixOnRetriesOnly(t *testing.T) {
	inv := &fakeInvoker{outputs: []string{"x", "y"}}
	c := &Controller{Invoker: inv, Accept: acceptAfter(2), MaxAttempts: 2}

	res := c.Do(context.Background(), "make it", invoker.Options{})
	require.True(t, res.OK())
	require.Equal(t, "make it", inv.prompts[0], "attempt 1 must be verbatim")
	require.Contains(t, inv.prompts[1], "rejected")
	require.Contains(t, inv.prompts[1], "not yet")
	require.True(t, strings.HasSuffix(inv.prompts[1], "make it"))
}

func TestDo_InvocationErrorConsumesAttempt(t *testing.T) {
	inv := &fakeInvoker{
		outputs: []string{"", "<ok>"},
		errs:    []error{&invoker.ExitError{Code: 1, Stderr: "boom"}, nil},
	}
	c := &Controller{Invoker: inv, Accept: acceptAfter(1), MaxAttempts: 2}

	res := c.Do(context.Background(), "make it", invoker.Options{})
	require.True(t, res.OK())
	require.Equal(t, 2, res.Attempts)
	// The exit error is folded into the retry feedback.
	require.Contains(t, inv.prompts[1], "boom")
}

func TestDo_NilAcceptorTakesAnyOutput(t *testing.T) {
	inv := &fakeInvoker{outputs: []string{"whatever"}}
	c := &Controller{Invoker: inv}

	res := c.Do(context.Background(), "p", invoker.Options{})
	require.True(t, res.OK())
	require.Equal(t, "whatever", res.Output)
	require.Equal(t, 1, res.Attempts)
}

func TestDo_ExtractedSurfaces(t *testing.T) {
	inv := &fakeInvoker{outputs: []string{"noise"}}
	c := &Controller{Invoker: inv, Accept: func(raw string) validate.Outcome {
		return validate.Outcome{Valid: true, Content: "<html></html>", Extracted: true}
	}}

	res := c.Do(context.Background(), "p", invoker.Options{})
	require.True(t, res.OK())
	require.True(t, res.Extracted)
	require.Equal(t, "<html></html>", res.Output)
}

func TestDo_CancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inv := &fakeInvoker{outputs: []string{"x", "x", "x"}}
	rejecting := func(raw string) validate.Outcome {
		cancel() // cancel mid-batch after the first attempt
		return validate.Outcome{Errors: []string{"bad"}}
	}
	c := &Controller{Invoker: inv, Accept: rejecting, MaxAttempts: 3}

	res := c.Do(ctx, "p", invoker.Options{})
	require.False(t, res.OK())
	require.Equal(t, 1, inv.calls)
}

func TestDo_OnRetryHook(t *testing.T) {
	inv := &fakeInvoker{outputs: []string{"x", "y"}}
	var notified []int
	c := &Controller{
		Invoker:     inv,
		Accept:      acceptAfter(2),
		MaxAttempts: 2,
		OnRetry:     func(attempt int, errs []string) { notified = append(notified, attempt) },
	}
	res := c.Do(context.Background(), "p", invoker.Options{})
	require.True(t, res.OK())
	require.Equal(t, []int{2}, notified)
}
