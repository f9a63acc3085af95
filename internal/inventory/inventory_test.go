package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const specWithTable = `# Product Spec

Some intro prose.

## Screens

| Screen   | Purpose                  |
|----------|--------------------------|
| Login    | Email and password form  |
| Settings | Account preferences      |

## Other table (ignored)

| Metric | Target |
|--------|--------|
| TTFB   | 200ms  |
`

func TestParseSpec_TableRows(t *testing.T) {
	screens := ParseSpec(specWithTable)
	require.Equal(t, []Screen{
		{Name: "Login", Brief: "Email and password form"},
		{Name: "Settings", Brief: "Account preferences"},
	}, screens)
}

func TestParseSpec_JSONBlockOfNames(t *testing.T) {
	spec := "# Spec\n\n```json\n[\"Login\", \"Dashboard\"]\n```\n"
	screens := ParseSpec(spec)
	require.Equal(t, []Screen{{Name: "Login"}, {Name: "Dashboard"}}, screens)
}

func TestParseSpec_JSONBlockOfObjects(t *testing.T) {
	spec := "```json\n[{\"name\": \"Login\", \"brief\": \"auth form\"}, {\"screen\": \"Home\", \"description\": \"landing\"}]\n```\n"
	screens := ParseSpec(spec)
	require.Equal(t, []Screen{
		{Name: "Login", Brief: "auth form"},
		{Name: "Home", Brief: "landing"},
	}, screens)
}

func TestParseSpec_RepairsMalformedJSON(t *testing.T) {
	// Trailing comma would fail strict parsing.
	spec := "```json\n[\"Login\", \"Dashboard\",]\n```\n"
	screens := ParseSpec(spec)
	require.Equal(t, []Screen{{Name: "Login"}, {Name: "Dashboard"}}, screens)
}

func TestParseSpec_DeduplicatesAcrossSources(t *testing.T) {
	spec := specWithTable + "\n```json\n[\"login\", \"Checkout\"]\n```\n"
	screens := ParseSpec(spec)
	require.Equal(t, []Screen{
		{Name: "Login", Brief: "Email and password form"},
		{Name: "Settings", Brief: "Account preferences"},
		{Name: "Checkout"},
	}, screens)
}

func TestParseSpec_Empty(t *testing.T) {
	require.Empty(t, ParseSpec("just prose, no inventory"))
}

func TestNames(t *testing.T) {
	names := Names([]Screen{{Name: "A"}, {Name: "B"}})
	require.Equal(t, []string{"A", "B"}, names)
}

func TestScanProduced(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	for _, f := range []string{"login.html", "settings.html", "notes.txt", "sub/nested.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
	}

	got, err := ScanProduced(dir, []string{"**/*.html"})
	require.NoError(t, err)
	require.Equal(t, []string{"login.html", "settings.html", "sub/nested.html"}, got)
}

func TestScanProduced_MissingDirIsEmpty(t *testing.T) {
	got, err := ScanProduced(filepath.Join(t.TempDir(), "nope"), []string{"*.html"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestScanProduced_BadPattern(t *testing.T) {
	_, err := ScanProduced(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
}
