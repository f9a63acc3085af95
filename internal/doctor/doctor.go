// Package doctor sends failure context from the last batch to the agent
// for diagnosis.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jberk/mocksmith/internal/artifacts"
	"github.com/jberk/mocksmith/internal/config"
	"github.com/jberk/mocksmith/internal/invoker"
)

const maxLogLines = 200

const diagPrompt = `You are diagnosing failed mockup generation tasks. Analyze the context below and provide a concise diagnosis.

## Project Config
%s

## Failed Tasks
%s
Instructions:
1. Identify what went wrong from each task's log and errors.
2. Classify each failure as a PROMPT problem (the instructions sent to the agent), an OUTPUT problem (the agent answered but the result was rejected), or an ENVIRONMENT problem (binary missing, timeouts, permissions).
3. Suggest specific fixes to the config or the prompt templates.
4. Recommend the next command to run:
   - mocksmith generate --only <screen>  (re-run just the failed screens)
   - mocksmith generate --force          (persist best-effort output for manual review)
   - Fix the underlying issue first, then retry

Be direct and concise. Focus on actionable advice.`

// Run gathers failure context from the last report and sends it to the
// agent for diagnosis.
func Run(ctx context.Context, workDir string, cfg *config.Config, inv invoker.Invoker) error {
	rep, err := artifacts.LoadReport(workDir)
	if err != nil {
		return err
	}
	if rep == nil {
		fmt.Println("No batch report found. Run 'mocksmith generate' first.")
		return nil
	}
	if rep.Failed == 0 {
		fmt.Println("Last batch succeeded. Nothing to diagnose.")
		return nil
	}

	var sections []string
	for _, t := range rep.Tasks {
		if t.Status == artifacts.StatusOK {
			continue
		}
		sections = append(sections, gatherTask(workDir, t))
	}

	diagText := fmt.Sprintf(diagPrompt, gatherConfig(cfg), strings.Join(sections, "\n"))

	fmt.Printf("Diagnosing %d failed tasks from run %s\n\n", rep.Failed, rep.RunID)

	out, err := inv.Invoke(ctx, diagText, invoker.Options{
		Timeout: 5 * time.Minute,
		Tier:    "high",
		Plain:   true,
		WorkDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}
	fmt.Println(out)
	return nil
}

func gatherConfig(cfg *config.Config) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Name: %s", cfg.Name))
	parts = append(parts, fmt.Sprintf("Kind: %s", cfg.Kind))
	parts = append(parts, fmt.Sprintf("Tier: %s", cfg.Tier))
	parts = append(parts, fmt.Sprintf("Timeout: %dm", cfg.Timeout))
	parts = append(parts, fmt.Sprintf("Max attempts: %d", cfg.MaxAttempts))
	if len(cfg.Components) > 0 {
		parts = append(parts, fmt.Sprintf("Components: %s", strings.Join(cfg.Components, ", ")))
	}
	return strings.Join(parts, "\n")
}

func gatherTask(workDir string, t artifacts.TaskReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s (status %s, %d attempts)\n", t.ID, t.Status, t.Attempts)
	if t.Error != "" {
		fmt.Fprintf(&b, "Errors: %s\n", t.Error)
	}
	fmt.Fprintf(&b, "\nLog (last %d lines):\n%s\n", maxLogLines, gatherLog(workDir, t.ID))
	return b.String()
}

func gatherLog(workDir, id string) string {
	data, err := os.ReadFile(artifacts.LogPath(workDir, id))
	if err != nil {
		return "(no log file found)"
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
		return fmt.Sprintf("... (truncated to last %d lines)\n%s", maxLogLines, strings.Join(lines, "\n"))
	}
	return string(data)
}
