package ux

import (
	"fmt"

	"github.com/jberk/mocksmith/internal/artifacts"
	"github.com/jberk/mocksmith/internal/coverage"
)

// RenderReport prints the last batch report.
func RenderReport(r *artifacts.Report) {
	fmt.Printf("%s  %s\n", bold("Run:"), r.RunID)
	fmt.Printf("%s  %s\n", bold("Project:"), r.Project)
	fmt.Printf("%s  %s — %s\n", bold("When:"),
		r.StartedAt.Local().Format("2006-01-02 15:04:05"),
		r.FinishedAt.Local().Format("15:04:05"))

	fmt.Printf("\n%s\n", bold("Tasks:"))
	for _, t := range r.Tasks {
		switch t.Status {
		case artifacts.StatusOK:
			fmt.Printf("  %s %-24s %s  %s\n", green("✓"), t.ID, dim(t.Artifact), dim(t.Duration))
		case artifacts.StatusForced:
			fmt.Printf("  %s %-24s %s\n", yellow("⚠"), t.ID, yellow("forced: "+t.Error))
		default:
			fmt.Printf("  %s %-24s %s\n", red("✗"), t.ID, red(t.Error))
		}
	}
	fmt.Printf("\n%s %d succeeded, %d failed\n\n", bold("Total:"), r.Succeeded, r.Failed)
}

// RenderCoverage prints the coverage report and component usage breakdown.
func RenderCoverage(rep coverage.Report, usage []coverage.ComponentUsage) {
	tint := green
	if rep.Percent < 100 {
		tint = yellow
	}
	if rep.Percent < 50 {
		tint = red
	}
	fmt.Printf("%s %s (%d/%d expected artifacts)\n", bold("Coverage:"),
		tint(fmt.Sprintf("%d%%", rep.Percent)), rep.Expected-len(rep.Missing), rep.Expected)

	if len(rep.Missing) > 0 {
		fmt.Printf("\n%s\n", bold("Missing:"))
		for _, m := range rep.Missing {
			fmt.Printf("  %s %s\n", red("–"), m)
		}
	}
	if len(rep.Extra) > 0 {
		fmt.Printf("\n%s\n", bold("Not in spec:"))
		for _, e := range rep.Extra {
			fmt.Printf("  %s %s\n", yellow("+"), e)
		}
	}

	if len(usage) > 0 {
		fmt.Printf("\n%s\n", bold("Component usage:"))
		for _, u := range usage {
			fmt.Printf("  %-20s %s\n", u.Component, dim(fmt.Sprintf("%d artifacts", u.Artifacts)))
		}
	}
	fmt.Println()
}
