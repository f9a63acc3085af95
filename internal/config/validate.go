package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var validTiers = map[string]bool{
	"":     true,
	"low":  true,
	"mid":  true,
	"high": true,
}

var validKinds = map[string]bool{
	"":           true,
	KindHTML:     true,
	KindMarkdown: true,
	KindJSON:     true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}
	if cfg.Spec == "" {
		return fmt.Errorf("config: 'spec' is required")
	}
	specPath := filepath.Join(projectRoot, cfg.Spec)
	if _, err := os.Stat(specPath); err != nil {
		return fmt.Errorf("config: spec file %q not found", specPath)
	}

	for _, p := range []struct{ field, path string }{
		{"system-prompt", cfg.SystemPrompt},
		{"screen-prompt", cfg.ScreenPrompt},
	} {
		if p.path == "" {
			return fmt.Errorf("config: '%s' is required", p.field)
		}
		full := filepath.Join(projectRoot, p.path)
		if _, err := os.Stat(full); err != nil {
			return fmt.Errorf("config: %s file %q not found", p.field, full)
		}
	}

	if !validTiers[cfg.Tier] {
		return fmt.Errorf("config: unknown tier %q (must be low, mid, or high)", cfg.Tier)
	}
	if cfg.Tier == "" {
		cfg.Tier = "mid"
	}

	if !validKinds[cfg.Kind] {
		return fmt.Errorf("config: unknown kind %q (must be html, markdown, or json)", cfg.Kind)
	}
	if cfg.Kind == "" {
		cfg.Kind = KindHTML
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("config: timeout must be >= 0")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10
	}

	if cfg.Limit < 0 {
		return fmt.Errorf("config: limit must be >= 0")
	}
	if cfg.Limit == 0 {
		cfg.Limit = 4
	}

	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("config: max-attempts must be >= 0")
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 2
	}

	if cfg.MinLength < 0 {
		return fmt.Errorf("config: min-length must be >= 0")
	}
	if cfg.MinLength == 0 {
		cfg.MinLength = 200
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "mockups"
	}
	if strings.Contains(cfg.OutputDir, "..") {
		return fmt.Errorf("config: output-dir must not contain '..'")
	}

	for _, d := range cfg.ReadDirs {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("config: 'read-dirs' entries must be non-empty")
		}
	}
	if len(cfg.ReadDirs) > 0 && !cfg.AllowReads {
		return fmt.Errorf("config: 'read-dirs' requires 'allow-file-reads: true'")
	}

	seen := make(map[string]bool)
	for _, c := range cfg.Components {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("config: 'components' entries must be non-empty")
		}
		if seen[c] {
			return fmt.Errorf("config: duplicate component %q", c)
		}
		seen[c] = true
	}

	return nil
}
