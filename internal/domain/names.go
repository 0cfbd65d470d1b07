package domain

import (
	"fmt"
	"path/filepath"

	m "unic.dev/pkg/unic/internal/model"
)

// AssignDisplayNames computes the display name of every discovered input.
//
// Two passes over the immutable discovery order: the first builds a
// read-only basename frequency table for the entire set, the second assigns
// names in order with an explicit per-basename counter. A single streaming
// pass cannot do this, because whether a name needs an index depends on the
// total occurrence count across all roots.
//
// Inputs whose basename is unique keep their path as given; inputs sharing
// a basename become "basename[k]" with k the 1-based order of appearance.
func AssignDisplayNames(found []FoundInput) []m.InputCase {
	frequency := make(map[string]int, len(found))
	for _, f := range found {
		frequency[filepath.Base(string(f.Path))]++
	}

	cases := make([]m.InputCase, 0, len(found))
	seen := make(map[string]int, len(frequency))

	for _, f := range found {
		base := filepath.Base(string(f.Path))
		seen[base]++

		name := string(f.Path)
		if frequency[base] > 1 {
			name = fmt.Sprintf("%s[%d]", base, seen[base])
		}

		cases = append(cases, m.InputCase{
			Source:      f.Path,
			DisplayName: name,
		})
	}

	return cases
}
