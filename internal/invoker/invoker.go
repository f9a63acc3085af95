// Package invoker spawns one external agent process per call and enforces
// the invocation contract: prompt over stdin, captured output, hard timeout.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultBinary is the external agent executable looked up on PATH.
const DefaultBinary = "claude"

// outputDiscipline is appended to the agent's system prompt on every call.
// The agent is instructed to emit only the artifact body; the validator
// exists because agents do not always comply.
const outputDiscipline = "You are producing a single artifact file. " +
	"Emit ONLY the artifact body: no conversational preamble, no markdown fences, " +
	"no commentary, no summary. Begin at the first byte of the artifact and stop at its last."

// outputDisciplineWithReads is the variant used when read access is granted.
const outputDisciplineWithReads = outputDiscipline +
	" Before producing output you MUST read the reference files in the directories you were granted."

// Models by tier. The tier names are deliberately generic; the concrete
// model identifiers are an external contract of the agent CLI.
var tierModels = map[string]string{
	"low":  "haiku",
	"mid":  "sonnet",
	"high": "opus",
}

// Options configures a single invocation. A plain value, not a live resource.
type Options struct {
	Timeout    time.Duration // per attempt; each retry restarts it
	Tier       string        // low, mid, high
	Plain      bool          // skip the output-discipline preamble
	AllowReads bool          // grant read-only file access
	ReadDirs   []string      // extra readable directories (requires AllowReads)
	WorkDir    string        // child process working directory
}

// Invoker runs one prompt through the external agent. Tests substitute a fake.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, opts Options) (string, error)
}

// CLI invokes the agent binary as a child process.
type CLI struct {
	Binary     string    // defaults to DefaultBinary
	Transcript io.Writer // optional mirror of stdout+stderr (per-task log)
}

// Invoke spawns the agent, writes the prompt to its stdin, and waits for
// exit. Output is captured without a size ceiling; callers own any limit.
func (c *CLI) Invoke(ctx context.Context, prompt string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, bin, buildArgs(opts)...)
	cmd.Dir = opts.WorkDir
	cmd.Stdin = strings.NewReader(prompt)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	// The agent exposes no graceful-shutdown request; on timeout the whole
	// process group gets a non-catchable kill.
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if c.Transcript != nil {
		cmd.Stdout = io.MultiWriter(&stdout, c.Transcript)
		cmd.Stderr = io.MultiWriter(&stderr, c.Transcript)
	}

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	return "", classify(ctx.Err(), err, bin, stderr.String())
}

// buildArgs assembles the agent CLI flags for one invocation.
func buildArgs(opts Options) []string {
	model := tierModels[opts.Tier]
	if model == "" {
		model = tierModels["mid"]
	}

	args := []string{"-p", "--model", model}
	if !opts.Plain {
		preamble := outputDiscipline
		if opts.AllowReads {
			preamble = outputDisciplineWithReads
		}
		args = append(args, "--append-system-prompt", preamble)
	}
	if opts.AllowReads {
		args = append(args, "--allowedTools", "Read")
		for _, d := range opts.ReadDirs {
			args = append(args, "--add-dir", d)
		}
	}
	return args
}

// classify maps a Run error onto the invocation error taxonomy.
func classify(ctxErr, runErr error, bin, stderr string) error {
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return &TimeoutError{Binary: bin}
	case errors.Is(ctxErr, context.Canceled):
		return ctxErr
	case errors.As(runErr, &exitErr):
		return &ExitError{Code: exitErr.ExitCode(), Stderr: truncate(stderr, maxStderr)}
	default:
		// Start failed: binary missing, permission denied, bad workdir.
		return &SpawnError{Binary: bin, Err: runErr}
	}
}
