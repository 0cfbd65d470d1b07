package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"unic.dev/pkg/unic/internal/adapter"
	m "unic.dev/pkg/unic/internal/model"
)

const (
	outputSuffix   = "_output.txt"
	valgrindSuffix = "_valgrind.txt"
)

// unsafeNameChars matches everything stripped from a target name before it
// becomes an evidence file name.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9 ._-]`)

// EvidenceStore persists the captured outputs of a failed case.
type EvidenceStore interface {
	// Persist writes the per-target outputs (and valgrind diagnostics,
	// when present) under outputRoot. Repeated runs overwrite the same
	// deterministic paths.
	Persist(c m.InputCase, result *m.RunResult, target1, target2 m.Target, outputRoot m.Path) (m.EvidenceRecord, error)
}

type evidenceStore struct {
	fs adapter.CaseFSAdapter
}

// NewEvidenceStore constructs an EvidenceStore backed by the given
// filesystem adapter.
func NewEvidenceStore(fsAdapter adapter.CaseFSAdapter) EvidenceStore {
	return &evidenceStore{fs: fsAdapter}
}

func (s *evidenceStore) Persist(c m.InputCase, result *m.RunResult, target1, target2 m.Target, outputRoot m.Path) (m.EvidenceRecord, error) {
	dir, err := s.evidenceDir(c.Source, outputRoot)
	if err != nil {
		return m.EvidenceRecord{}, &PersistenceError{Case: c, Err: err}
	}

	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return m.EvidenceRecord{}, &PersistenceError{Case: c, Err: err}
	}

	name1 := SanitizeTargetName(target1.Name())

	name2 := SanitizeTargetName(target2.Name())
	if name2 == name1 {
		// Same program name on both sides; keep the two output files
		// apart.
		name2 += "_2"
	}

	record := m.EvidenceRecord{
		Case: c,
		Dir:  dir,
		Outputs: [2]m.Path{
			m.Path(filepath.Join(string(dir), name1+outputSuffix)),
			m.Path(filepath.Join(string(dir), name2+outputSuffix)),
		},
	}

	if err := s.fs.WriteFile(record.Outputs[0], []byte(result.Stdout1), 0o600); err != nil {
		return m.EvidenceRecord{}, &PersistenceError{Case: c, Err: err}
	}

	if err := s.fs.WriteFile(record.Outputs[1], []byte(result.Stdout2), 0o600); err != nil {
		return m.EvidenceRecord{}, &PersistenceError{Case: c, Err: err}
	}

	diagnostics := []struct {
		name string
		text string
	}{
		{name1, result.Stderr1},
		{name2, result.Stderr2},
	}

	for _, d := range diagnostics {
		if d.text == "" {
			continue
		}

		path := m.Path(filepath.Join(string(dir), d.name+valgrindSuffix))
		if err := s.fs.WriteFile(path, []byte(d.text), 0o600); err != nil {
			return m.EvidenceRecord{}, &PersistenceError{Case: c, Err: err}
		}
	}

	return record, nil
}

// evidenceDir derives the collision-safe destination for a case: the
// absolute source path with any volume prefix re-inserted as a leading
// segment, joined under the output root. Two inputs sharing a basename but
// living in different directories therefore never collide.
func (s *evidenceStore) evidenceDir(source, outputRoot m.Path) (m.Path, error) {
	abs, err := s.fs.Abs(source)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", source, err)
	}

	volume := filepath.VolumeName(string(abs))
	rest := strings.TrimPrefix(string(abs), volume)
	rest = strings.TrimLeft(rest, `/\`)

	segments := []string{string(outputRoot)}
	if volume != "" {
		segments = append(segments, strings.TrimSuffix(volume, ":"))
	}

	segments = append(segments, rest)

	return m.Path(filepath.Join(segments...)), nil
}

// SanitizeTargetName keeps alphanumerics, space, dot, dash and underscore;
// everything else becomes an underscore.
func SanitizeTargetName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
