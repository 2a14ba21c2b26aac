package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asset-selector-be/internal/entity"
	"asset-selector-be/internal/repository/contract"
	"asset-selector-be/internal/repository/specification"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedManifest = errors.New("catalog: unsupported manifest format")

// Source produces the flat asset records the index is built from.
type Source interface {
	Load(ctx context.Context) ([]entity.Asset, error)
}

// StaticSource serves a fixed slice.
type StaticSource []entity.Asset

func (s StaticSource) Load(ctx context.Context) ([]entity.Asset, error) {
	out := make([]entity.Asset, len(s))
	copy(out, s)
	return out, nil
}

// FileSource reads a JSON or YAML manifest. JSON may be a bare array or an
// object with an "assets" field.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

type manifest struct {
	Assets []entity.Asset `json:"assets" yaml:"assets"`
}

func (s *FileSource) Load(ctx context.Context) ([]entity.Asset, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", s.Path, err)
	}
	return ParseManifest(filepath.Ext(s.Path), data)
}

// ParseManifest decodes manifest bytes according to the file extension.
func ParseManifest(ext string, data []byte) ([]entity.Asset, error) {
	switch strings.ToLower(ext) {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var assets []entity.Asset
			if err := json.Unmarshal(trimmed, &assets); err != nil {
				return nil, fmt.Errorf("parsing json manifest: %w", err)
			}
			return assets, nil
		}
		var m manifest
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("parsing json manifest: %w", err)
		}
		return m.Assets, nil
	case ".yaml", ".yml":
		var m manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing yaml manifest: %w", err)
		}
		return m.Assets, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedManifest, ext)
	}
}

// RepositorySource loads active rows from the media asset table.
type RepositorySource struct {
	repo contract.MediaAssetRepository
}

func NewRepositorySource(repo contract.MediaAssetRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Load(ctx context.Context) ([]entity.Asset, error) {
	rows, err := s.repo.FindAll(ctx, specification.ActiveOnly{}, specification.OrderByCreated{})
	if err != nil {
		return nil, fmt.Errorf("loading media assets: %w", err)
	}
	assets := make([]entity.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.ToAsset())
	}
	return assets, nil
}
