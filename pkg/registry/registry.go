// Package registry provides the question-tree source for the PermitPath
// engine: an in-memory mapping from project type to validated QuestionTree,
// optionally loaded from a directory of YAML files with hot reload.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/permitpath/permitpath/pkg/domain"
)

// Registry implements ports.TreeSource with an in-memory map.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	trees map[string]*domain.QuestionTree

	// dir is remembered by LoadDir so Watch knows what to observe.
	dir string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		trees: make(map[string]*domain.QuestionTree),
	}
}

// Register validates a tree and stores it under its project type.
// An existing tree for the same project type is replaced.
func (r *Registry) Register(tree *domain.QuestionTree) error {
	if err := ValidateTree(tree); err != nil {
		return fmt.Errorf("invalid tree %q: %w", tree.ProjectType, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trees[tree.ProjectType] = tree
	return nil
}

// Get returns the tree registered for a project type.
func (r *Registry) Get(projectType string) (*domain.QuestionTree, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tree, ok := r.trees[projectType]
	if !ok {
		return nil, domain.ErrTreeNotFound
	}
	return tree, nil
}

// List returns the registered project types in sorted order.
func (r *Registry) List() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.trees))
	for k := range r.trees {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// FromMap decodes a generic map (e.g. a JSON payload from the web front end)
// into a QuestionTree and registers it. Decoding is weakly typed so "true"
// and 1 are accepted where a bool is expected.
func (r *Registry) FromMap(raw map[string]any) (*domain.QuestionTree, error) {
	var tree domain.QuestionTree

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &tree,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}

	if err := r.Register(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// ValidateTree checks the structural rules a tree must satisfy before any
// engine may run it. Violations here are configuration errors, not per-call
// validation results.
func ValidateTree(tree *domain.QuestionTree) error {
	if tree == nil {
		return fmt.Errorf("tree is nil")
	}
	if tree.ProjectType == "" {
		return fmt.Errorf("project_type is required")
	}
	if tree.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(tree.Questions) == 0 {
		return fmt.Errorf("tree has no questions")
	}

	seen := make(map[string]bool, len(tree.Questions))
	for i, q := range tree.Questions {
		if q.ID == "" {
			return fmt.Errorf("question %d: id is required", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}

		switch q.Type {
		case domain.KindYesNo, domain.KindNumber, domain.KindText:
		case domain.KindSelect, domain.KindMultiSelect:
			if len(q.Options) == 0 {
				return fmt.Errorf("question %q: %s requires options", q.ID, q.Type)
			}
		default:
			return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}

		if q.MinSelections > 0 {
			if q.Type != domain.KindMultiSelect {
				return fmt.Errorf("question %q: min_selections only applies to multi-select", q.ID)
			}
			if q.MinSelections > len(q.Options) {
				return fmt.Errorf("question %q: min_selections %d exceeds %d options", q.ID, q.MinSelections, len(q.Options))
			}
		}

		if q.Validation != nil && q.Validation.Pattern != "" {
			if _, err := regexp.Compile(q.Validation.Pattern); err != nil {
				return fmt.Errorf("question %q: invalid pattern: %v", q.ID, err)
			}
		}

		if q.Condition != nil {
			if err := validateCondition(q.Condition, seen); err != nil {
				return fmt.Errorf("question %q: %w", q.ID, err)
			}
		}

		seen[q.ID] = true
	}

	return nil
}

// validateCondition ensures a condition references an earlier question and
// sets at most one operand. Forward references can never become applicable,
// so they are rejected rather than silently skipped forever.
func validateCondition(c *domain.Condition, earlier map[string]bool) error {
	if c.Field == "" {
		return fmt.Errorf("condition field is required")
	}
	if !earlier[c.Field] {
		return fmt.Errorf("condition references %q, which is not an earlier question", c.Field)
	}

	operands := 0
	for _, op := range []any{c.Equals, c.NotEquals, c.Contains} {
		if op != nil {
			operands++
		}
	}
	if operands > 1 {
		return fmt.Errorf("condition sets %d operands, at most one allowed", operands)
	}
	return nil
}
