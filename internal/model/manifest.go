package model

// ManifestVersion is the current manifest schema version.
const ManifestVersion = 1

// Manifest records the failed cases of a completed run so a later
// `unic review` can reopen the review session without re-running anything.
type Manifest struct {
	Version  int             `yaml:"version"`
	Target1  string          `yaml:"target1"`
	Target2  string          `yaml:"target2"`
	Valgrind bool            `yaml:"valgrind"`
	Entries  []ManifestEntry `yaml:"entries"`
}

// ManifestEntry is one failed case in the manifest.
type ManifestEntry struct {
	DisplayName string   `yaml:"display_name"`
	Source      string   `yaml:"source"`
	Outcome     string   `yaml:"outcome"`
	EvidenceDir string   `yaml:"evidence_dir"`
	Outputs     []string `yaml:"outputs"`
}

// Index rebuilds the review index from the manifest entries. Entries without
// two persisted outputs (timeouts, execution errors) are skipped, matching
// what the review session can actually open.
func (m Manifest) Index() ReviewIndex {
	index := make(ReviewIndex, len(m.Entries))

	for _, entry := range m.Entries {
		if len(entry.Outputs) < 2 {
			continue
		}

		index[entry.DisplayName] = EvidenceRecord{
			Case: InputCase{
				Source:      Path(entry.Source),
				DisplayName: entry.DisplayName,
			},
			Dir:     Path(entry.EvidenceDir),
			Outputs: [2]Path{Path(entry.Outputs[0]), Path(entry.Outputs[1])},
		}
	}

	return index
}
