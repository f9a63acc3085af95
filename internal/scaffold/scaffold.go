// Package scaffold creates a new .mocksmith/ project directory.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

var configTemplate = `name: my-product
spec: .mocksmith/product-spec.md
output-dir: mockups
system-prompt: .mocksmith/prompts/system.md
screen-prompt: .mocksmith/prompts/screen.md
kind: html
tier: mid
timeout: 10      # minutes per attempt
limit: 4         # max concurrent agent processes
max-attempts: 2
min-length: 400
allow-file-reads: false
components:
  - nav-bar
  - button
  - card
`

var specTemplate = `# Product Spec

Describe your product here. mocksmith reads the screen inventory from the
table below (and from any ` + "```json" + ` block holding an array of names).

## Screens

| Screen   | Purpose                       |
|----------|-------------------------------|
| Login    | Email and password sign-in    |
| Home     | Landing page after sign-in    |
| Settings | Account and profile settings  |
`

var systemTemplate = `You are a senior frontend engineer producing static HTML mockups.

Every page is a single self-contained HTML file: inline <style> with design
tokens in a :root block, no external assets, no JavaScript frameworks.

Shared components use these class names: nav-bar, button, card.
`

var screenTemplate = `Produce the "$SCREEN" screen: $BRIEF

Product context:

$SPEC

Use the shared component classes wherever they apply.
`

// Init creates a new .mocksmith/ directory with example config, spec, and
// prompt templates.
func Init(targetDir string) error {
	root := filepath.Join(targetDir, ".mocksmith")
	if _, err := os.Stat(root); err == nil {
		return fmt.Errorf(".mocksmith directory already exists in %s", targetDir)
	}

	promptsDir := filepath.Join(root, "prompts")
	if err := os.MkdirAll(promptsDir, 0755); err != nil {
		return fmt.Errorf("creating .mocksmith/prompts: %w", err)
	}

	files := []struct {
		path, content string
	}{
		{filepath.Join(root, "config.yaml"), configTemplate},
		{filepath.Join(root, "product-spec.md"), specTemplate},
		{filepath.Join(promptsDir, "system.md"), systemTemplate},
		{filepath.Join(promptsDir, "screen.md"), screenTemplate},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}

	fmt.Printf("Created %s\n", root)
	fmt.Println("Edit config.yaml and product-spec.md, then run 'mocksmith generate'.")
	return nil
}
