package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Login", "login"},
		{"Settings Page", "settings-page"},
		{"  Checkout / Payment  ", "checkout---payment"},
		{"Héllo!", "hllo"},
		{"--edge--", "edge"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}

func TestFileName(t *testing.T) {
	require.Equal(t, "login.html", FileName("Login", "html"))
	require.Equal(t, "release-notes.md", FileName("Release Notes", "markdown"))
	require.Equal(t, "manifest.json", FileName("Manifest", "json"))
	require.Equal(t, "x.txt", FileName("x", "unknown"))
}

func TestEnsureDirs(t *testing.T) {
	work := filepath.Join(t.TempDir(), "work")
	require.NoError(t, EnsureDirs(work))
	for _, d := range []string{"prompts", "logs"} {
		info, err := os.Stat(filepath.Join(work, d))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
	// Idempotent.
	require.NoError(t, EnsureDirs(work))
}

func TestWriteArtifact_AtomicAndCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "login.html")
	require.NoError(t, WriteArtifact(path, []byte("<html></html>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file must not survive")
}

func TestReport_SaveLoadRoundTrip(t *testing.T) {
	work := t.TempDir()
	r := NewReport("demo")
	require.NotEmpty(t, r.RunID)

	r.Add(TaskReport{ID: "login", Artifact: "login.html", Status: StatusOK, Attempts: 1})
	r.Add(TaskReport{ID: "settings", Status: StatusFailed, Attempts: 2, Error: "exhausted"})
	require.Equal(t, 1, r.Succeeded)
	require.Equal(t, 1, r.Failed)

	require.NoError(t, r.Save(work))

	loaded, err := LoadReport(work)
	require.NoError(t, err)
	require.Equal(t, r.RunID, loaded.RunID)
	require.Len(t, loaded.Tasks, 2)
	require.Equal(t, "exhausted", loaded.Tasks[1].Error)
	require.False(t, loaded.FinishedAt.IsZero())
}

func TestLoadReport_NoneYet(t *testing.T) {
	r, err := LoadReport(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, r)
}

func TestPaths(t *testing.T) {
	require.Equal(t, filepath.Join("w", "prompts", "login.md"), PromptPath("w", "Login"))
	require.Equal(t, filepath.Join("w", "logs", "login.log"), LogPath("w", "Login"))
}
