package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/jberk/mocksmith/internal/artifacts"
	"github.com/jberk/mocksmith/internal/batch"
	"github.com/jberk/mocksmith/internal/config"
	"github.com/jberk/mocksmith/internal/coverage"
	"github.com/jberk/mocksmith/internal/doctor"
	"github.com/jberk/mocksmith/internal/docs"
	"github.com/jberk/mocksmith/internal/inventory"
	"github.com/jberk/mocksmith/internal/invoker"
	"github.com/jberk/mocksmith/internal/prompt"
	"github.com/jberk/mocksmith/internal/retry"
	"github.com/jberk/mocksmith/internal/scaffold"
	"github.com/jberk/mocksmith/internal/ux"
	"github.com/jberk/mocksmith/internal/validate"
)

func main() {
	app := &cli.Command{
		Name:        "mocksmith",
		Usage:       "Bulk-generate screen mockups through an external coding agent",
		Description: "Run 'mocksmith docs' for documentation on config, prompts, validation, and more.",
		Commands: []*cli.Command{
			initCmd(),
			generateCmd(),
			verifyCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ux.Errorf(err)
		os.Exit(1)
	}
}

// project bundles the resolved root, the .mocksmith/ work dir, and the config.
type project struct {
	root    string
	workDir string
	cfg     *config.Config
}

func loadProject() (*project, error) {
	root, err := findProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, ".mocksmith", "config.yaml"), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &project{root: root, workDir: filepath.Join(root, ".mocksmith"), cfg: cfg}, nil
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .mocksmith/ directory with example config",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate an artifact for every screen in the product spec",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Override the configured concurrency limit"},
			&cli.BoolFlag{Name: "force", Usage: "Persist rejected output of exhausted tasks for manual review"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the task plan without spawning any agent"},
			&cli.StringSliceFlag{Name: "only", Usage: "Generate only the named screens (repeatable)"},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	// CLAUDECODE guard
	if os.Getenv("CLAUDECODE") != "" {
		return fmt.Errorf("mocksmith cannot run inside Claude Code (CLAUDECODE env var is set). Run from a regular terminal")
	}

	p, err := loadProject()
	if err != nil {
		return err
	}
	cfg := p.cfg

	specText, err := os.ReadFile(filepath.Join(p.root, cfg.Spec))
	if err != nil {
		return fmt.Errorf("reading spec: %w", err)
	}
	screens := inventory.ParseSpec(string(specText))
	if len(screens) == 0 {
		return fmt.Errorf("no screens found in %s (add an inventory table or a json block)", cfg.Spec)
	}
	screens, err = filterScreens(screens, cmd.StringSlice("only"))
	if err != nil {
		return err
	}

	system, err := os.ReadFile(filepath.Join(p.root, cfg.SystemPrompt))
	if err != nil {
		return fmt.Errorf("reading system prompt: %w", err)
	}
	skillTmpl, err := os.ReadFile(filepath.Join(p.root, cfg.ScreenPrompt))
	if err != nil {
		return fmt.Errorf("reading screen prompt: %w", err)
	}

	limit := cfg.Limit
	if n := cmd.Int("limit"); n > 0 {
		limit = int(n)
	}

	opts := invoker.Options{
		Timeout:    time.Duration(cfg.Timeout) * time.Minute,
		Tier:       cfg.Tier,
		AllowReads: cfg.AllowReads,
		WorkDir:    p.root,
	}
	for _, d := range cfg.ReadDirs {
		opts.ReadDirs = append(opts.ReadDirs, filepath.Join(p.root, d))
	}

	accept := acceptorFor(cfg)
	tasks := make([]batch.Task, len(screens))
	for i, s := range screens {
		skill := prompt.ExpandVars(string(skillTmpl), map[string]string{
			"SCREEN": s.Name,
			"BRIEF":  s.Brief,
			"SPEC":   string(specText),
		})
		tasks[i] = batch.Task{
			ID:     artifacts.Slug(s.Name),
			Prompt: prompt.Compose(string(system), skill),
			Opts:   opts,
			Accept: accept,
		}
	}

	if cmd.Bool("dry-run") {
		printPlan(cfg, screens, limit)
		return nil
	}

	if err := invoker.Preflight(invoker.DefaultBinary); err != nil {
		return err
	}
	if err := artifacts.EnsureDirs(p.workDir); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := artifacts.WriteArtifact(artifacts.PromptPath(p.workDir, t.ID), []byte(t.Prompt)); err != nil {
			return fmt.Errorf("saving prompt: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &batch.Runner{
		Invoker:     &invoker.CLI{},
		MaxAttempts: cfg.MaxAttempts,
		NewInvoker: func(t batch.Task) invoker.Invoker {
			return &transcriptInvoker{path: artifacts.LogPath(p.workDir, t.ID)}
		},
		OnRetry: func(t batch.Task, attempt int, errs []string) {
			ux.RetryNotice(t.ID, attempt, cfg.MaxAttempts, errs)
		},
	}

	ux.BatchHeader(cfg.Name, len(tasks), limit)
	start := time.Now()
	results := runner.RunAll(ctx, tasks, limit)

	outDir := filepath.Join(p.root, cfg.OutputDir)
	rep := artifacts.NewReport(cfg.Name)
	force := cmd.Bool("force")
	for i, res := range results {
		name := artifacts.FileName(screens[i].Name, cfg.Kind)
		tr := artifacts.TaskReport{
			ID:        res.TaskID,
			Attempts:  res.Attempts,
			Extracted: res.Extracted,
			Duration:  res.Duration.Round(time.Millisecond).String(),
		}
		switch {
		case res.OK():
			if err := artifacts.WriteArtifact(filepath.Join(outDir, name), []byte(res.Output)); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			tr.Status, tr.Artifact = artifacts.StatusOK, name
			ux.TaskDone(res.TaskID, res.Attempts, res.Duration)
			if res.Extracted {
				ux.TaskExtracted(res.TaskID)
			}
		case force && res.LastRaw != "":
			if err := artifacts.WriteArtifact(filepath.Join(outDir, name), []byte(res.LastRaw)); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			tr.Status, tr.Artifact, tr.Error = artifacts.StatusForced, name, res.Err
			ux.TaskForced(res.TaskID)
		default:
			tr.Status, tr.Error = artifacts.StatusFailed, res.Err
			ux.TaskFailed(res.TaskID, res.Err)
		}
		rep.Add(tr)
	}

	if err := rep.Save(p.workDir); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	ux.Summary(rep.Succeeded, rep.Failed, time.Since(start))

	if rep.Failed > 0 && !force {
		return fmt.Errorf("%d of %d tasks failed; see 'mocksmith doctor'", rep.Failed, len(tasks))
	}
	return nil
}

// minComponentPercent is the share of shared components an HTML screen must
// reference before it is accepted.
const minComponentPercent = 50

// acceptorFor composes the validation pipeline and the per-kind post-checks.
func acceptorFor(cfg *config.Config) retry.Acceptor {
	kind := validate.Kind(cfg.Kind)
	return func(raw string) validate.Outcome {
		out := validate.Run(raw, kind)
		if !out.Valid {
			return out
		}
		checks := []validate.Check{validate.MinLength(cfg.MinLength)}
		if kind == validate.HTML {
			checks = append(checks,
				validate.DesignTokens(),
				validate.Components(cfg.Components, minComponentPercent))
		}
		if errs := validate.RunChecks(out.Content, checks...); len(errs) > 0 {
			return validate.Outcome{Errors: errs}
		}
		return out
	}
}

// filterScreens applies --only. Matching is by slug so "Settings Page" and
// "settings-page" both select the same screen.
func filterScreens(screens []inventory.Screen, only []string) ([]inventory.Screen, error) {
	if len(only) == 0 {
		return screens, nil
	}
	want := make(map[string]bool, len(only))
	for _, o := range only {
		want[artifacts.Slug(o)] = true
	}
	var out []inventory.Screen
	for _, s := range screens {
		if key := artifacts.Slug(s.Name); want[key] {
			out = append(out, s)
			delete(want, key)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for k := range want {
			unknown = append(unknown, k)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown screens: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func printPlan(cfg *config.Config, screens []inventory.Screen, limit int) {
	fmt.Printf("Plan: %d screens, kind %s, tier %s, %d in flight, %d attempts each\n\n",
		len(screens), cfg.Kind, cfg.Tier, limit, cfg.MaxAttempts)
	for _, s := range screens {
		fmt.Printf("  %-24s -> %s\n", s.Name,
			filepath.Join(cfg.OutputDir, artifacts.FileName(s.Name, cfg.Kind)))
	}
}

// transcriptInvoker appends each attempt's stdout and stderr to a per-task
// log file, so retries accumulate in one transcript.
type transcriptInvoker struct {
	path string
}

func (ti *transcriptInvoker) Invoke(ctx context.Context, p string, opts invoker.Options) (string, error) {
	f, err := os.OpenFile(ti.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return (&invoker.CLI{}).Invoke(ctx, p, opts)
	}
	defer f.Close()
	return (&invoker.CLI{Transcript: f}).Invoke(ctx, p, opts)
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Compare produced artifacts against the spec's screen inventory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			cfg := p.cfg

			specText, err := os.ReadFile(filepath.Join(p.root, cfg.Spec))
			if err != nil {
				return fmt.Errorf("reading spec: %w", err)
			}
			screens := inventory.ParseSpec(string(specText))

			outDir := filepath.Join(p.root, cfg.OutputDir)
			produced, err := inventory.ScanProduced(outDir, []string{"**/*." + artifacts.Ext(cfg.Kind)})
			if err != nil {
				return fmt.Errorf("scanning %s: %w", outDir, err)
			}

			rep := coverage.Compare(inventory.Names(screens), produced)

			contents := make(map[string]string, len(produced))
			for _, f := range produced {
				data, err := os.ReadFile(filepath.Join(outDir, f))
				if err != nil {
					continue
				}
				contents[f] = string(data)
			}
			ux.RenderCoverage(rep, coverage.UsageBreakdown(cfg.Components, contents))

			if len(rep.Missing) > 0 {
				return fmt.Errorf("%d expected artifacts missing", len(rep.Missing))
			}
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the last batch report",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			rep, err := artifacts.LoadReport(p.workDir)
			if err != nil {
				return fmt.Errorf("loading report: %w", err)
			}
			if rep == nil {
				fmt.Println("No batch has run yet. Run 'mocksmith generate' first.")
				return nil
			}
			ux.RenderReport(rep)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Diagnose the last failed batch using the agent",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if err := invoker.Preflight(invoker.DefaultBinary); err != nil {
				return err
			}
			return doctor.Run(ctx, p.workDir, p.cfg, &invoker.CLI{})
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'mocksmith docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findProjectRoot walks up from cwd looking for .mocksmith/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ".mocksmith", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .mocksmith/config.yaml found (searched from cwd to root)")
		}
		dir = parent
	}
}
