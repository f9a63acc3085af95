package artifacts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Task statuses recorded in the batch report.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusForced = "forced" // exhausted retries, persisted under --force
)

// TaskReport records one task's outcome in the batch report.
type TaskReport struct {
	ID        string `json:"id"`
	Artifact  string `json:"artifact,omitempty"`
	Status    string `json:"status"`
	Attempts  int    `json:"attempts"`
	Extracted bool   `json:"extracted,omitempty"`
	Error     string `json:"error,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// Report is the persisted record of one generation batch.
type Report struct {
	RunID      string       `json:"run_id"`
	Project    string       `json:"project"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	Tasks      []TaskReport `json:"tasks"`
}

// NewReport starts a report for a fresh batch run.
func NewReport(project string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Project:   project,
		StartedAt: time.Now().UTC(),
	}
}

// Add appends one task outcome and updates the tallies.
func (r *Report) Add(t TaskReport) {
	r.Tasks = append(r.Tasks, t)
	if t.Status == StatusOK {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

func reportPath(workDir string) string {
	return filepath.Join(workDir, "report.json")
}

// Save finalizes and persists the report atomically.
func (r *Report) Save(workDir string) error {
	r.FinishedAt = time.Now().UTC()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(reportPath(workDir), data, 0644)
}

// LoadReport reads the last batch report. Returns (nil, nil) when no batch
// has run yet.
func LoadReport(workDir string) (*Report, error) {
	data, err := os.ReadFile(reportPath(workDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
