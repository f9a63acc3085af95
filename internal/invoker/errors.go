package invoker

import "fmt"

// maxStderr bounds stderr excerpts carried inside errors. Full streams stay
// in the per-task transcript.
const maxStderr = 2048

// SpawnError reports that the agent process could not be started at all.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %s: %v (is it installed and on PATH?)", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// TimeoutError reports that the agent process was killed at the deadline.
type TimeoutError struct {
	Binary string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out and was killed", e.Binary)
}

// ExitError reports a non-zero agent exit, with a bounded stderr excerpt.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("agent exited with code %d", e.Code)
	}
	return fmt.Sprintf("agent exited with code %d: %s", e.Code, e.Stderr)
}

// truncate keeps the tail of s, which for stderr is where the actual
// failure usually lands.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
