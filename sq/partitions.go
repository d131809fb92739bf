package sq

import (
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// LoadPartitionsMatching lists every regular file under fsys whose path
// matches a doublestar glob pattern (e.g. "partitions/2024-*/codes.bin"),
// in deterministic sorted order — the selection step a host engine runs
// before folding a set of named SQ partitions into one Storage via
// AppendBatch.
func LoadPartitionsMatching(fsys fs.FS, pattern string) ([]string, error) {
	if _, err := doublestar.Match(pattern, ""); err != nil {
		return nil, err
	}

	var matches []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
