package ioingest

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// profSuffix is the file name pattern profile files follow; the float
// identifier is the stem before it.
const profSuffix = "_prof.nc"

// metaSuffix names the per-float metadata file.
const metaSuffix = "_meta.nc"

// discoverFloatIDs scans a data directory for profile files and
// derives float identifiers from their name stems. Identifiers come
// back sorted so directory-wide runs produce reproducible logs.
func discoverFloatIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory %s: %w", dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, found := strings.CutSuffix(e.Name(), profSuffix)
		if found && id != "" {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)
	return ids, nil
}
