package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoLoader is returned when no loader is registered for a file extension.
var ErrNoLoader = errors.New("no loader for file extension")

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader dispatches every path to the loader registered for its file
// extension and merges the results in argument order.
type MultiLoader struct {
	byExt map[string]Loader
}

// NewMultiLoader creates an empty MultiLoader.
func NewMultiLoader() *MultiLoader {
	return &MultiLoader{byExt: make(map[string]Loader)}
}

// Register makes l handle every path ending in one of exts (".hcl", ".yaml").
// Directories are always passed to every registered loader.
func (m *MultiLoader) Register(l Loader, exts ...string) *MultiLoader {
	for _, ext := range exts {
		m.byExt[strings.ToLower(ext)] = l
	}
	return m
}

// Load implements Loader.
func (m *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, path := range paths {
		loaders, err := m.loadersFor(path)
		if err != nil {
			return nil, err
		}
		for _, l := range loaders {
			part, err := l.Load(ctx, path)
			if err != nil {
				return nil, err
			}
			model.Merge(part)
		}
	}
	return model, nil
}

func (m *MultiLoader) loadersFor(path string) ([]Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		// A directory: every distinct loader gets to walk it, in extension order.
		exts := make([]string, 0, len(m.byExt))
		for e := range m.byExt {
			exts = append(exts, e)
		}
		sort.Strings(exts)

		var out []Loader
		seen := make(map[Loader]struct{})
		for _, e := range exts {
			l := m.byExt[e]
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
		return out, nil
	}
	l, ok := m.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, path)
	}
	return []Loader{l}, nil
}
