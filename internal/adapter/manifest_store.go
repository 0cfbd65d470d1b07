package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "unic.dev/pkg/unic/internal/model"
)

// manifestFileName is the manifest's file name inside the output root.
const manifestFileName = "manifest.yaml"

// ManifestStore persists and reloads the run manifest for a results
// directory.
type ManifestStore interface {
	Save(outputRoot m.Path, manifest m.Manifest) error
	Load(outputRoot m.Path) (m.Manifest, error)
}

// YAMLManifestStore stores the manifest as manifest.yaml in the output root.
type YAMLManifestStore struct{}

// NewYAMLManifestStore constructs a YAMLManifestStore.
func NewYAMLManifestStore() *YAMLManifestStore {
	return &YAMLManifestStore{}
}

// Save writes the manifest into the output root, creating it if needed.
func (s *YAMLManifestStore) Save(outputRoot m.Path, manifest m.Manifest) error {
	if err := os.MkdirAll(string(outputRoot), 0o750); err != nil {
		return fmt.Errorf("creating output root: %w", err)
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	path := filepath.Join(string(outputRoot), manifestFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

// Load reads the manifest back from the output root.
func (s *YAMLManifestStore) Load(outputRoot m.Path) (m.Manifest, error) {
	path := filepath.Join(string(outputRoot), manifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return m.Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	return manifest, nil
}
