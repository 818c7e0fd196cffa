// Package pool loads the labeled image pool a quiz session samples from.
package pool

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"image-judge/internal/domain"
)

//go:embed default_pool.yaml
var defaultPool []byte

type poolFile struct {
	Images []domain.ImageItem `yaml:"images"`
}

// Default returns the embedded image pool.
func Default() (domain.ImagePool, error) {
	return Parse(defaultPool)
}

// Load reads a pool from path, or the embedded pool when path is empty.
func Load(path string) (domain.ImagePool, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image pool %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("image pool %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML pool document.
func Parse(data []byte) (domain.ImagePool, error) {
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode image pool: %w", err)
	}
	p := domain.ImagePool(f.Images)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image pool: %w", err)
	}
	return p, nil
}
