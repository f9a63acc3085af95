// Package artifacts owns the on-disk layout: produced artifact files, saved
// prompts, per-task transcripts, and the batch report.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extensions by artifact kind.
var kindExt = map[string]string{
	"html":     "html",
	"markdown": "md",
	"json":     "json",
}

// EnsureDirs creates the working directory structure for a batch.
func EnsureDirs(workDir string) error {
	dirs := []string{
		workDir,
		filepath.Join(workDir, "prompts"),
		filepath.Join(workDir, "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating work dir %s: %w", d, err)
		}
	}
	return nil
}

// Slug converts a screen name to a filesystem-safe identifier.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '/':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// Ext returns the file extension for an artifact kind.
func Ext(kind string) string {
	if e := kindExt[kind]; e != "" {
		return e
	}
	return "txt"
}

// FileName returns the artifact filename for a screen of the given kind.
func FileName(name, kind string) string {
	return Slug(name) + "." + Ext(kind)
}

// PromptPath returns where the composed prompt for a task is saved for
// inspection.
func PromptPath(workDir, taskID string) string {
	return filepath.Join(workDir, "prompts", Slug(taskID)+".md")
}

// LogPath returns the per-task transcript path.
func LogPath(workDir, taskID string) string {
	return filepath.Join(workDir, "logs", Slug(taskID)+".log")
}

// WriteArtifact persists cleaned artifact content atomically, creating
// parent directories as needed.
func WriteArtifact(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating artifact dir: %w", err)
	}
	return writeFileAtomic(path, content, 0644)
}
