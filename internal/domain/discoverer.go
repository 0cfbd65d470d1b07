package domain

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"unic.dev/pkg/unic/internal/adapter"
	m "unic.dev/pkg/unic/internal/model"
)

// inputExt is the extension collected when expanding directory roots. File
// roots given directly are accepted regardless of extension.
const inputExt = ".txt"

// FoundInput is one candidate input path in discovery order.
type FoundInput struct {
	Path m.Path

	// Expanded is true when the path was produced by walking a directory
	// root rather than named directly on the command line.
	Expanded bool
}

// DiscoveryResult carries the ordered candidate list and the roots that did
// not exist. Missing roots are reported by the driver and excluded from all
// further processing; they never abort the run.
type DiscoveryResult struct {
	Found   []FoundInput
	Missing []m.Path
}

// Discoverer expands the operator-given roots into candidate input paths.
type Discoverer interface {
	Discover(roots []m.Path, maxDepth int) DiscoveryResult
}

type discoverer struct {
	fs adapter.CaseFSAdapter
}

// NewDiscoverer constructs a Discoverer backed by the given filesystem
// adapter.
func NewDiscoverer(fsAdapter adapter.CaseFSAdapter) Discoverer {
	return &discoverer{fs: fsAdapter}
}

// Discover visits roots in order. File roots are included verbatim;
// directory roots are walked depth-first collecting input files, with
// directories deeper than maxDepth levels (counted from 1 at a root's
// immediate children) left undescended. Entries the process cannot read are
// skipped silently.
func (d *discoverer) Discover(roots []m.Path, maxDepth int) DiscoveryResult {
	var result DiscoveryResult

	for _, root := range roots {
		info, err := d.fs.FileInfo(root)
		if err != nil {
			result.Missing = append(result.Missing, root)
			continue
		}

		if !info.IsDir() {
			result.Found = append(result.Found, FoundInput{Path: root})
			continue
		}

		d.walk(root, 1, maxDepth, &result.Found)
	}

	return result
}

func (d *discoverer) walk(dir m.Path, depth, maxDepth int, found *[]FoundInput) {
	if depth > maxDepth {
		return
	}

	entries, err := d.fs.ReadDir(dir)
	if err != nil {
		// Permission failures on a subtree never fail the whole run.
		slog.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		child := m.Path(filepath.Join(string(dir), entry.Name()))

		switch {
		case entry.IsDir():
			d.walk(child, depth+1, maxDepth, found)

		case entry.Type()&fs.ModeType == 0 && filepath.Ext(entry.Name()) == inputExt:
			*found = append(*found, FoundInput{Path: child, Expanded: true})
		}
	}
}
