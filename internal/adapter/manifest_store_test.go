package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "unic.dev/pkg/unic/internal/model"
)

func TestYAMLManifestStore_SaveAndLoad(t *testing.T) {
	store := NewYAMLManifestStore()
	outputRoot := m.Path(filepath.Join(t.TempDir(), "results"))

	manifest := m.Manifest{
		Version:  m.ManifestVersion,
		Target1:  "./echo",
		Target2:  "./reverse --fast",
		Valgrind: true,
		Entries: []m.ManifestEntry{{
			DisplayName: "x.txt[1]",
			Source:      "a/x.txt",
			Outcome:     "output mismatch",
			EvidenceDir: "results/a/x.txt",
			Outputs:     []string{"results/a/x.txt/echo_output.txt", "results/a/x.txt/reverse_output.txt"},
		}},
	}

	// Save creates the output root if needed.
	require.NoError(t, store.Save(outputRoot, manifest))

	loaded, err := store.Load(outputRoot)
	require.NoError(t, err)
	assert.Equal(t, manifest, loaded)
}

func TestYAMLManifestStore_LoadMissing(t *testing.T) {
	store := NewYAMLManifestStore()

	_, err := store.Load(m.Path(t.TempDir()))
	require.Error(t, err)
}

func TestYAMLManifestStore_SaveOverwrites(t *testing.T) {
	store := NewYAMLManifestStore()
	outputRoot := m.Path(t.TempDir())

	require.NoError(t, store.Save(outputRoot, m.Manifest{Version: 1, Target1: "old"}))
	require.NoError(t, store.Save(outputRoot, m.Manifest{Version: 1, Target1: "new"}))

	loaded, err := store.Load(outputRoot)
	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Target1)
}
