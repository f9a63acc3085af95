package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with mocksmith",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "prompts",
		Title:   "Prompt Templates",
		Summary: "System and screen templates, variables, and feedback",
		Content: topicPrompts,
	},
	{
		Name:    "validation",
		Title:   "Output Validation",
		Summary: "How raw agent output becomes an accepted artifact",
		Content: topicValidation,
	},
	{
		Name:    "retries",
		Title:   "Retries and Failure",
		Summary: "Attempt budgets, feedback, --force, and the doctor",
		Content: topicRetries,
	},
	{
		Name:    "reports",
		Title:   "Reports and Coverage",
		Summary: "Batch reports, status, and the verify command",
		Content: topicReports,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    mocksmith init

   This creates .mocksmith/ with config.yaml, product-spec.md, and two
   prompt templates under prompts/.

2. Edit .mocksmith/product-spec.md. The screen inventory is read from
   markdown tables whose first header cell is Screen, Page, Name, or
   Artifact, and from any fenced json block holding an array of names.

3. Preview the batch without spawning any agent processes:

    mocksmith generate --dry-run

4. Run for real:

    mocksmith generate

   Accepted artifacts land in the configured output directory. Raw
   transcripts and rendered prompts are kept under .mocksmith/logs/
   and .mocksmith/prompts/.

5. Check what happened:

    mocksmith status
    mocksmith verify

Run 'mocksmith docs <topic>' for detail on any topic listed by
'mocksmith docs'.`

const topicConfig = `Configuration Reference
=======================

mocksmith reads .mocksmith/config.yaml. Paths are resolved relative to
the project root (the directory holding .mocksmith/).

  name            Project name used in prompts and reports.
  spec            Path to the product spec. Required.
  output-dir      Where accepted artifacts are written. Default: mockups.
                  Must not point outside the project.
  system-prompt   Path to the system prompt template. Required.
  screen-prompt   Path to the per-screen prompt template. Required.
  kind            Artifact kind: html, markdown, or json. Default: html.
  tier            Model tier: low, mid, or high. Default: mid.
  timeout         Minutes per attempt. Default: 10. The clock restarts
                  on every retry.
  limit           Max concurrent agent processes. Default: 4.
  max-attempts    Attempts per screen before giving up. Default: 2.
  min-length      Minimum accepted artifact size in bytes. Default: 200.
  allow-file-reads
                  Grant the agent read-only access to reference files.
                  Default: false. Off means the agent gets no tools.
  read-dirs       Extra readable directories. Requires allow-file-reads.
  components      Shared component class names every HTML artifact
                  should use. Drives the component post-check and the
                  usage breakdown in 'mocksmith verify'.`

const topicPrompts = `Prompt Templates
================

Two templates combine into each screen's prompt:

  system-prompt   Shared instructions: visual language, design tokens,
                  component classes. Sent once per invocation via the
                  agent's system prompt flag.
  screen-prompt   Per-screen body. Variables are expanded before
                  composition:

                      $SCREEN   screen name from the inventory
                      $BRIEF    the screen's one-line purpose, if the
                                inventory table had a second column
                      $SPEC     the full product spec text

                  Unknown $VARS fall through to environment variables.

A short output-discipline reminder is always appended: the agent is
told to emit only the artifact body. Compliance is not assumed; the
validator exists because agents drift.

On retries the original prompt is kept verbatim and a feedback block
is appended listing the validation errors from the previous attempt,
so the agent can correct rather than start over.`

const topicValidation = `Output Validation
=================

Raw agent output passes through a fixed pipeline before it is written
anywhere:

1. Fence stripping. A leading code fence line and matching trailing
   fence are removed. Applied once; already-clean output is untouched.

2. Failure signatures. Case-insensitive phrases that indicate the
   agent stalled or described its work instead of doing it:
   permission requests, "I've created", "Here's the", summary
   headings. Every match is reported, not just the first.

3. Structural check per kind:
     html       output must start with <!doctype or <html and end
                with </html>
     markdown   at least one # heading line
     json       must parse; invalid JSON goes through automatic
                repair and is accepted with a warning if repair works

4. Extraction fallback. If the structural check fails but a complete
   document is embedded in surrounding prose, the document is sliced
   out and re-validated. Accepted-but-extracted artifacts are flagged
   in the report for manual review.

5. Post-checks (html only): design tokens present (:root block inside
   a <style>), shared components used, minimum length.`

const topicRetries = `Retries and Failure
===================

Each screen gets max-attempts tries (default 2). Every attempt spawns
a fresh agent process with a fresh timeout. Between attempts the
prompt grows a feedback block naming the previous errors.

A screen whose attempts are all rejected is failed; its last errors
go to the report and 'mocksmith generate' exits non-zero. Other
screens are unaffected, they run to completion in the same batch.

  --force     persist the final rejected output anyway, marked as
              forced in the report. For salvaging near-misses by hand.
  --only X    regenerate just the named screens.

Timeouts kill the whole agent process group with SIGKILL; a hung
agent cannot outlive its attempt.

When a batch has failures, 'mocksmith doctor' gathers the failed
tasks' logs and errors and asks a high-tier agent for a diagnosis and
a suggested next command.`

const topicReports = `Reports and Coverage
====================

Every 'mocksmith generate' writes .mocksmith/report.json: run id,
timestamps, and one entry per task with status (ok, failed, forced),
attempt count, and whether extraction was needed.

  mocksmith status   pretty-prints the last report.

  mocksmith verify   compares the spec's screen inventory against the
                     files actually present in output-dir. Reports
                     coverage percent, missing artifacts, files not in
                     the spec, and per-component usage across the
                     produced HTML.

Comparison is by normalized name: lowercased, extension dropped, so
Login matches login.html.`
