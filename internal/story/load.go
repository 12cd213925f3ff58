package story

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// ErrNoRoot is returned when a story file doesn't name its root chapter.
var ErrNoRoot = errors.New("story: no root chapter")

// File is the on-disk layout of an authored story.
type File struct {
	Root     ChapterID  `yaml:"root"`
	Chapters []*Chapter `yaml:"chapters"`
}

// Parse decodes a YAML story. Structural validation is left to NewGraph.
func Parse(data []byte) (ChapterID, []*Chapter, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return "", nil, err
	}
	if f.Root == "" {
		return "", nil, ErrNoRoot
	}
	return f.Root, f.Chapters, nil
}

// LoadFile reads and parses a YAML story file.
func LoadFile(path string) (ChapterID, []*Chapter, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", nil, fmt.Errorf("read story %q: %w", cleanPath, err)
	}
	root, chapters, err := Parse(data)
	if err != nil {
		return "", nil, fmt.Errorf("parse story %q: %w", cleanPath, err)
	}
	return root, chapters, nil
}
