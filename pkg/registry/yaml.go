package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/permitpath/permitpath/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadDir registers every tree found in a directory of YAML files
// (*.yaml / *.yml, one tree per file). When a file omits project_type, the
// file name stem is used. The directory is remembered for Watch.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read tree directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !isTreeFile(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no tree files found in %s", dir)
	}

	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()
	return nil
}

// LoadFile parses and registers a single YAML tree file.
func (r *Registry) LoadFile(path string) error {
	_, err := r.loadFile(path)
	return err
}

func (r *Registry) loadFile(path string) (*domain.QuestionTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}

	tree, err := parseTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tree.ProjectType == "" {
		tree.ProjectType = stem(path)
	}

	if err := r.Register(tree); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func parseTree(data []byte) (*domain.QuestionTree, error) {
	var tree domain.QuestionTree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return &tree, nil
}

func isTreeFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
