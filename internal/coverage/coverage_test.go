package coverage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare_PartialCoverage(t *testing.T) {
	r := Compare([]string{"a.html", "b.html"}, []string{"a.html"})
	require.Equal(t, 50, r.Percent)
	require.Equal(t, []string{"b.html"}, r.Missing)
	require.Empty(t, r.Extra)
}

func TestCompare_EmptyExpectedIsVacuouslyFull(t *testing.T) {
	r := Compare(nil, nil)
	require.Equal(t, 100, r.Percent)
	require.Empty(t, r.Missing)
	require.Empty(t, r.Extra)
}

func TestCompare_DuplicatesClampTo100(t *testing.T) {
	r := Compare([]string{"a"}, []string{"a", "a", "extra"})
	require.Equal(t, 100, r.Percent)
	require.Empty(t, r.Missing)
	require.Equal(t, []string{"extra"}, r.Extra)
	require.Equal(t, 3, r.Produced)
}

func TestCompare_NormalizesCaseAndExtension(t *testing.T) {
	r := Compare([]string{"Login", "Settings Page"}, []string{"login.html", "settings page.HTML"})
	require.Equal(t, 100, r.Percent)
	require.Empty(t, r.Missing)
	require.Empty(t, r.Extra)
}

func TestCompare_Rounding(t *testing.T) {
	r := Compare([]string{"a", "b", "c"}, []string{"a"})
	require.Equal(t, 33, r.Percent)
	r = Compare([]string{"a", "b", "c"}, []string{"a", "b"})
	require.Equal(t, 67, r.Percent)
}

func TestCompare_MissingKeepsDeclarationOrder(t *testing.T) {
	r := Compare([]string{"z", "a", "m"}, nil)
	require.Equal(t, []string{"z", "a", "m"}, r.Missing)
	require.Equal(t, 0, r.Percent)
}

func TestUsageBreakdown(t *testing.T) {
	artifacts := map[string]string{
		"login.html":    `<div class="nav-bar"></div><button class="button">`,
		"settings.html": `<div class="nav-bar"></div>`,
		"about.html":    `<p>plain</p>`,
	}
	usage := UsageBreakdown([]string{"button", "nav-bar", "card"}, artifacts)

	require.Equal(t, []ComponentUsage{
		{Component: "nav-bar", Artifacts: 2},
		{Component: "button", Artifacts: 1},
		{Component: "card", Artifacts: 0},
	}, usage)
}

func TestUsageBreakdown_NoComponents(t *testing.T) {
	require.Empty(t, UsageBreakdown(nil, map[string]string{"a": "x"}))
}
