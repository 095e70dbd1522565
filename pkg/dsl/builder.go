package dsl

import (
	"fmt"

	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/registry"
)

// Builder manages question tree construction.
type Builder struct {
	tree      domain.QuestionTree
	questions []*QuestionBuilder
}

// New creates a builder for the given project type.
func New(projectType, name string) *Builder {
	return &Builder{
		tree: domain.QuestionTree{
			ProjectType: projectType,
			Name:        name,
		},
	}
}

// Ask appends a new question to the tree and returns its builder.
// Question order is the order of Ask calls.
func (b *Builder) Ask(id, text string) *QuestionBuilder {
	qb := &QuestionBuilder{
		question: domain.Question{
			ID:   id,
			Text: text,
			Type: domain.KindText,
		},
		builder: b,
	}
	b.questions = append(b.questions, qb)
	return qb
}

// Build compiles and validates the tree.
func (b *Builder) Build() (*domain.QuestionTree, error) {
	tree := b.tree
	tree.Questions = make([]domain.Question, 0, len(b.questions))
	for _, qb := range b.questions {
		tree.Questions = append(tree.Questions, qb.question)
	}

	if err := registry.ValidateTree(&tree); err != nil {
		return nil, fmt.Errorf("failed to build question tree: %w", err)
	}

	return &tree, nil
}

// Source builds the tree and wraps it in a single-tree registry, ready to
// hand to the engine.
func (b *Builder) Source() (*registry.Registry, error) {
	tree, err := b.Build()
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := reg.Register(tree); err != nil {
		return nil, err
	}
	return reg, nil
}
