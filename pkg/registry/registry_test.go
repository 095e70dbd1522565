package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTree() *domain.QuestionTree {
	return &domain.QuestionTree{
		ProjectType: "water-heater",
		Name:        "Water Heater Replacement",
		Questions: []domain.Question{
			{ID: "fuel", Text: "What fuel does the new unit use?", Type: domain.KindSelect, Required: true, Options: []domain.Option{
				{Value: "gas", Label: "Natural gas"},
				{Value: "electric", Label: "Electric"},
			}},
			{ID: "venting", Text: "Does the venting change?", Type: domain.KindYesNo, Required: true,
				Condition: &domain.Condition{Field: "fuel", Equals: "gas"}},
		},
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(validTree()))

	tree, err := r.Get("water-heater")
	require.NoError(t, err)
	assert.Equal(t, "Water Heater Replacement", tree.Name)

	_, err = r.Get("tree-house")
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)

	types, err := r.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"water-heater"}, types)
}

func TestValidateTree_Rejections(t *testing.T) {
	mutate := func(fn func(*domain.QuestionTree)) *domain.QuestionTree {
		tree := validTree()
		fn(tree)
		return tree
	}

	tests := []struct {
		name string
		tree *domain.QuestionTree
	}{
		{"missing project type", mutate(func(tr *domain.QuestionTree) { tr.ProjectType = "" })},
		{"missing name", mutate(func(tr *domain.QuestionTree) { tr.Name = "" })},
		{"no questions", mutate(func(tr *domain.QuestionTree) { tr.Questions = nil })},
		{"empty question id", mutate(func(tr *domain.QuestionTree) { tr.Questions[0].ID = "" })},
		{"duplicate question id", mutate(func(tr *domain.QuestionTree) { tr.Questions[1].ID = "fuel" })},
		{"unknown question type", mutate(func(tr *domain.QuestionTree) { tr.Questions[1].Type = "slider" })},
		{"select without options", mutate(func(tr *domain.QuestionTree) { tr.Questions[0].Options = nil })},
		{"min_selections on non multi-select", mutate(func(tr *domain.QuestionTree) { tr.Questions[0].MinSelections = 1 })},
		{"uncompilable pattern", mutate(func(tr *domain.QuestionTree) {
			tr.Questions[1].Validation = &domain.ValidationRule{Pattern: "("}
		})},
		{"condition forward reference", mutate(func(tr *domain.QuestionTree) {
			tr.Questions[0].Condition = &domain.Condition{Field: "venting", Equals: "yes"}
		})},
		{"condition on unknown field", mutate(func(tr *domain.QuestionTree) {
			tr.Questions[1].Condition = &domain.Condition{Field: "nope", Equals: "yes"}
		})},
		{"condition with two operands", mutate(func(tr *domain.QuestionTree) {
			tr.Questions[1].Condition = &domain.Condition{Field: "fuel", Equals: "gas", NotEquals: "electric"}
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, registry.ValidateTree(tt.tree))
		})
	}
}

func TestRegistry_FromMap(t *testing.T) {
	r := registry.New()

	tree, err := r.FromMap(map[string]any{
		"project_type": "fence",
		"name":         "Fence Installation",
		"questions": []any{
			map[string]any{
				"id":       "height",
				"text":     "How tall is the fence?",
				"type":     "number",
				"required": "true", // weakly typed on purpose
				"unit":     "ft",
				"validation": map[string]any{
					"min": 1,
					"max": 12,
				},
			},
			map[string]any{
				"id":   "front-yard",
				"text": "Is any part in the front yard?",
				"type": "yes-no",
				"condition": map[string]any{
					"field":  "height",
					"equals": 6,
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Fence Installation", tree.Name)
	assert.True(t, tree.Questions[0].Required)
	require.NotNil(t, tree.Questions[0].Validation.Min)
	assert.Equal(t, float64(1), *tree.Questions[0].Validation.Min)

	got, err := r.Get("fence")
	require.NoError(t, err)
	assert.Equal(t, tree, got)
}

func TestRegistry_LoadDir(t *testing.T) {
	dir := t.TempDir()

	treeYAML := `
name: Bathroom Remodel
questions:
  - id: move-plumbing
    text: Are you moving any plumbing fixtures?
    type: yes-no
    required: true
  - id: fixture-count
    text: How many fixtures are affected?
    type: number
    unit: fixtures
    condition:
      field: move-plumbing
      equals: "yes"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bathroom-remodel.yaml"), []byte(treeYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	r := registry.New()
	require.NoError(t, r.LoadDir(dir))

	// project_type falls back to the file name stem
	tree, err := r.Get("bathroom-remodel")
	require.NoError(t, err)
	assert.Equal(t, "Bathroom Remodel", tree.Name)
	require.NotNil(t, tree.Questions[1].Condition)
	assert.Equal(t, "move-plumbing", tree.Questions[1].Condition.Field)
}

func TestRegistry_LoadDir_Empty(t *testing.T) {
	r := registry.New()
	assert.Error(t, r.LoadDir(t.TempDir()))
}
