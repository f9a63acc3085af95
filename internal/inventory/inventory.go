// Package inventory extracts the expected artifact inventory from a product
// spec document and scans the output directory for what was produced.
package inventory

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Screen is one expected artifact declared in the product spec.
type Screen struct {
	Name  string
	Brief string // short description carried into the generation prompt
}

// headerNames are first-column table headers that mark an inventory table.
var headerNames = map[string]bool{
	"screen":   true,
	"page":     true,
	"name":     true,
	"artifact": true,
}

var jsonFenceRe = regexp.MustCompile("^```json\\s*$")

// ParseSpec extracts screens from markdown table rows and fenced JSON
// blocks, in order of appearance, deduplicated by name.
func ParseSpec(text string) []Screen {
	var screens []Screen
	screens = append(screens, parseTables(text)...)
	screens = append(screens, parseJSONBlocks(text)...)

	seen := make(map[string]bool)
	out := screens[:0]
	for _, s := range screens {
		key := strings.ToLower(s.Name)
		if s.Name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// parseTables walks markdown tables whose first header cell names an
// inventory column. The row's first cell is the screen name, the second
// (when present) its brief.
func parseTables(text string) []Screen {
	var screens []Screen
	inTable := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			inTable = false
			continue
		}
		cells := splitRow(trimmed)
		if len(cells) == 0 {
			continue
		}
		if !inTable {
			if headerNames[strings.ToLower(cells[0])] {
				inTable = true
			}
			continue
		}
		if isSeparatorRow(cells) {
			continue
		}
		s := Screen{Name: cells[0]}
		if len(cells) > 1 {
			s.Brief = cells[1]
		}
		screens = append(screens, s)
	}
	return screens
}

func splitRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, ":-") != "" {
			return false
		}
	}
	return true
}

// parseJSONBlocks extracts screens from ```json fenced blocks holding either
// an array of names or an array of objects. Malformed blocks get one
// mechanical repair attempt before being skipped.
func parseJSONBlocks(text string) []Screen {
	var screens []Screen
	var buf strings.Builder
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inBlock && jsonFenceRe.MatchString(trimmed):
			inBlock = true
			buf.Reset()
		case inBlock && trimmed == "```":
			inBlock = false
			screens = append(screens, decodeBlock(buf.String())...)
		case inBlock:
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return screens
}

type screenEntry struct {
	Name        string `json:"name"`
	Screen      string `json:"screen"`
	Brief       string `json:"brief"`
	Description string `json:"description"`
}

func decodeBlock(block string) []Screen {
	data := []byte(block)
	if !json.Valid(data) {
		repaired, err := jsonrepair.JSONRepair(block)
		if err != nil {
			return nil
		}
		data = []byte(repaired)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		screens := make([]Screen, 0, len(names))
		for _, n := range names {
			screens = append(screens, Screen{Name: strings.TrimSpace(n)})
		}
		return screens
	}

	var entries []screenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	screens := make([]Screen, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = e.Screen
		}
		brief := e.Brief
		if brief == "" {
			brief = e.Description
		}
		screens = append(screens, Screen{Name: strings.TrimSpace(name), Brief: brief})
	}
	return screens
}

// Names returns just the screen names, for coverage comparison.
func Names(screens []Screen) []string {
	names := make([]string, len(screens))
	for i, s := range screens {
		names[i] = s.Name
	}
	return names
}

// sortedUnique is shared by the produced-artifact scan.
func sortedUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	sort.Strings(out)
	return out
}
