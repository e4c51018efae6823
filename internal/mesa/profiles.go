package mesa

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/mesa-tools/mesaplot/internal/pathutil"
)

var profilePattern = regexp.MustCompile(`^profile(\d+)\.data$`)

// ProfilePaths returns the profile*.data files in dir, sorted by profile
// number rather than lexically (profile9 before profile10).
func ProfilePaths(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "profile*.data"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for profiles: %w", pathutil.RedactPath(dir), err)
	}
	type numbered struct {
		path string
		n    int
	}
	var found []numbered
	for _, m := range matches {
		sub := profilePattern.FindStringSubmatch(filepath.Base(m))
		if sub == nil {
			continue
		}
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			continue
		}
		found = append(found, numbered{path: m, n: n})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}

// LatestProfile loads the highest-numbered profile in dir.
func LatestProfile(dir string) (*Data, error) {
	paths, err := ProfilePaths(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no profile files in %s", pathutil.RedactPath(dir))
	}
	return Load(paths[len(paths)-1])
}
