package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"folio/internal/modules/plugin/domain"
	pluginout "folio/internal/modules/plugin/port/out"
)

// FileManifestStore reads the plugin list from plugins.json, or from a YAML
// file when the path ends in .yaml or .yml.
type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) pluginout.ManifestStore {
	return &FileManifestStore{path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin manifests: %w", err)
	}

	manifests, err := decodeManifests(s.path, raw)
	if err != nil {
		return nil, fmt.Errorf("decode plugin manifests %s: %w", s.path, err)
	}

	seen := make(map[string]bool, len(manifests))
	base := filepath.Dir(s.path)
	for i := range manifests {
		m := &manifests[i]
		if seen[m.Name] {
			return nil, fmt.Errorf("plugin %q listed twice in %s", m.Name, s.path)
		}
		seen[m.Name] = true
		// Relative binaries resolve against the manifest directory.
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			m.Binary = filepath.Clean(filepath.Join(base, m.Binary))
		}
	}
	return manifests, nil
}

func decodeManifests(path string, raw []byte) ([]domain.Manifest, error) {
	var manifests []domain.Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&manifests); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&manifests); err != nil {
			return nil, err
		}
	}
	if manifests == nil {
		manifests = []domain.Manifest{}
	}
	return manifests, nil
}
