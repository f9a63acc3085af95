package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Artifact kinds produced by a batch.
const (
	KindHTML     = "html"
	KindMarkdown = "markdown"
	KindJSON     = "json"
)

// Config describes one mocksmith project.
type Config struct {
	Name         string   `yaml:"name"`
	Spec         string   `yaml:"spec"`
	OutputDir    string   `yaml:"output-dir"`
	SystemPrompt string   `yaml:"system-prompt"`
	ScreenPrompt string   `yaml:"screen-prompt"`
	Kind         string   `yaml:"kind"`
	Tier         string   `yaml:"tier"`
	Timeout      int      `yaml:"timeout"` // minutes per attempt
	Limit        int      `yaml:"limit"`   // max concurrent agent processes
	MaxAttempts  int      `yaml:"max-attempts"`
	MinLength    int      `yaml:"min-length"` // reject shorter output as truncated
	AllowReads   bool     `yaml:"allow-file-reads"`
	ReadDirs     []string `yaml:"read-dirs"`
	Components   []string `yaml:"components"` // shared building blocks screens should use
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}
