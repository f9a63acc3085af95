// Package ux renders terminal output for batch runs.
package ux

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	dim    = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func stamp() string {
	return dim("[" + time.Now().Format("15:04:05") + "]")
}

// BatchHeader announces a batch run.
func BatchHeader(project string, tasks, limit int) {
	fmt.Printf("\n%s %s\n", stamp(), cyan("══════════════════════════════════════"))
	fmt.Printf("%s  %s\n", stamp(), bold(fmt.Sprintf("%s: generating %d artifacts (max %d in flight)", project, tasks, limit)))
	fmt.Printf("%s %s\n", stamp(), cyan("══════════════════════════════════════"))
}

// TaskDone reports one accepted artifact.
func TaskDone(id string, attempts int, d time.Duration) {
	note := ""
	if attempts > 1 {
		note = fmt.Sprintf(" after %d attempts", attempts)
	}
	fmt.Printf("%s  %s\n", stamp(), green(fmt.Sprintf("✓ %s (%s)%s", id, round(d), note)))
}

// TaskExtracted warns that an accepted artifact had to be pulled out of
// surrounding noise.
func TaskExtracted(id string) {
	fmt.Printf("%s  %s\n", stamp(), yellow(fmt.Sprintf("⚠ %s: artifact extracted from noisy output", id)))
}

// TaskFailed reports a task that exhausted its retries.
func TaskFailed(id string, errMsg string) {
	fmt.Printf("%s  %s\n", stamp(), red(fmt.Sprintf("✗ %s: %s", id, errMsg)))
}

// TaskForced reports best-effort output persisted under --force.
func TaskForced(id string) {
	fmt.Printf("%s  %s\n", stamp(), yellow(fmt.Sprintf("⚠ %s: persisted unvalidated output — manual review required", id)))
}

// RetryNotice reports a retry about to run with feedback.
func RetryNotice(id string, attempt, maxAttempts int, errs []string) {
	fmt.Printf("%s  %s\n", stamp(), yellow(fmt.Sprintf("↺ %s: attempt %d/%d with feedback: %s",
		id, attempt, maxAttempts, clip(strings.Join(errs, "; "), 120))))
}

// Summary prints the batch tally.
func Summary(succeeded, failed int, d time.Duration) {
	line := fmt.Sprintf("══ %d succeeded, %d failed in %s ══", succeeded, failed, round(d))
	if failed > 0 {
		fmt.Printf("\n%s  %s\n\n", stamp(), bold(red(line)))
		return
	}
	fmt.Printf("\n%s  %s\n\n", stamp(), bold(green(line)))
}

// Errorf prints a fatal error to stderr.
func Errorf(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
}

// Warn prints a yellow warning line.
func Warn(format string, args ...any) {
	fmt.Printf("%s  %s\n", stamp(), yellow(fmt.Sprintf(format, args...)))
}

func round(d time.Duration) time.Duration {
	return d.Round(100 * time.Millisecond)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
