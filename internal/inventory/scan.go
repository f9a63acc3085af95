package inventory

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanProduced globs the output directory for produced artifacts and
// returns their relative paths, sorted and deduplicated. A missing
// directory scans as empty: nothing produced yet.
func ScanProduced(dir string, patterns []string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	fsys := os.DirFS(dir)
	var produced []string
	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pat, err)
		}
		produced = append(produced, matches...)
	}
	return sortedUnique(produced), nil
}
