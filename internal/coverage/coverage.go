// Package coverage cross-checks produced artifacts against the expected
// inventory declared in the product spec.
package coverage

import (
	"math"
	"path/filepath"
	"sort"
	"strings"
)

// Report compares an expected identifier set with a produced one. Derived
// data only; recomputable at any time.
type Report struct {
	Expected int      `json:"expected"`
	Produced int      `json:"produced"`
	Percent  int      `json:"percent"`
	Missing  []string `json:"missing,omitempty"`
	Extra    []string `json:"extra,omitempty"`
}

// normalize case-folds an identifier and strips its extension, so
// "Login.html" and "login" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSuffix(s, filepath.Ext(s))
}

// Compare matches the two sets under normalization. Percent is clamped to
// 100: duplicates in produced inflate raw counts but never the percentage.
func Compare(expected, produced []string) Report {
	expSet := make(map[string]bool, len(expected))
	var expOrder []string // originals, first occurrence, for stable Missing
	for _, e := range expected {
		n := normalize(e)
		if !expSet[n] {
			expSet[n] = true
			expOrder = append(expOrder, e)
		}
	}

	prodSet := make(map[string]bool, len(produced))
	var extra []string
	for _, p := range produced {
		n := normalize(p)
		if prodSet[n] {
			continue
		}
		prodSet[n] = true
		if !expSet[n] {
			extra = append(extra, p)
		}
	}

	var missing []string
	matched := 0
	for _, e := range expOrder {
		if prodSet[normalize(e)] {
			matched++
		} else {
			missing = append(missing, e)
		}
	}

	percent := 100 // vacuous full coverage for an empty expectation
	if len(expOrder) > 0 {
		percent = int(math.Round(100 * float64(matched) / float64(len(expOrder))))
		if percent > 100 {
			percent = 100
		}
	}

	return Report{
		Expected: len(expOrder),
		Produced: len(produced),
		Percent:  percent,
		Missing:  missing,
		Extra:    extra,
	}
}

// ComponentUsage is one row of the usage breakdown.
type ComponentUsage struct {
	Component string `json:"component"`
	Artifacts int    `json:"artifacts"` // produced artifacts referencing it
}

// UsageBreakdown tallies how many produced artifacts reference each shared
// component. Pure aggregation for diagnostic display, no comparison
// semantics. artifacts maps artifact name to its content.
func UsageBreakdown(components []string, artifacts map[string]string) []ComponentUsage {
	usage := make([]ComponentUsage, 0, len(components))
	for _, c := range components {
		marker := strings.ToLower(c)
		count := 0
		for _, content := range artifacts {
			if strings.Contains(strings.ToLower(content), marker) {
				count++
			}
		}
		usage = append(usage, ComponentUsage{Component: c, Artifacts: count})
	}
	sort.SliceStable(usage, func(i, j int) bool {
		if usage[i].Artifacts != usage[j].Artifacts {
			return usage[i].Artifacts > usage[j].Artifacts
		}
		return usage[i].Component < usage[j].Component
	})
	return usage
}
