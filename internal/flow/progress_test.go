package flow_test

import (
	"fmt"
	"testing"

	"github.com/permitpath/permitpath/internal/flow"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floorTree has one gate question and four questions behind it, so pruning
// the branch drops the applicable count well below the 60% floor.
func floorTree() *domain.QuestionTree {
	questions := []domain.Question{yesNo("gate", "Does the project touch the roof?")}
	for i := 0; i < 4; i++ {
		questions = append(questions, domain.Question{
			ID:        fmt.Sprintf("roof-%d", i),
			Text:      fmt.Sprintf("Roof detail %d", i),
			Type:      domain.KindYesNo,
			Condition: &domain.Condition{Field: "gate", Equals: "yes"},
		})
	}
	return &domain.QuestionTree{ProjectType: "roof", Name: "Roof Work", Questions: questions}
}

func TestEstimateTotal_FloorsAtSixtyPercent(t *testing.T) {
	source := newSource(t, floorTree())
	eng, err := flow.New("roof", source)
	require.NoError(t, err)

	// Branch closed: only the gate is applicable, but the floor is
	// round(0.6 * 5) = 3.
	assert.Equal(t, 3, eng.EstimateTotal())

	eng.NextQuestion()
	eng.Answer("gate", "yes")
	assert.Equal(t, 5, eng.EstimateTotal(), "open branch lifts the estimate above the floor")
}

func TestProgress_StaysWithinBoundsWithoutConditionals(t *testing.T) {
	source := newSource(t, threeYesNo())
	eng, err := flow.New("shed", source)
	require.NoError(t, err)

	assert.Equal(t, 0, eng.Progress())

	expected := []int{33, 67, 100}
	ids := []string{"foundation", "electric", "plumbing"}
	for i, id := range ids {
		eng.NextQuestion()
		eng.Answer(id, "yes")
		p := eng.Progress()
		assert.Equal(t, expected[i], p)
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}

func TestProgress_AdaptsWhenBranchPruned(t *testing.T) {
	source := newSource(t, floorTree())
	eng, err := flow.New("roof", source)
	require.NoError(t, err)

	eng.NextQuestion()
	eng.Answer("gate", "no")

	// One answered out of a floored estimate of 3.
	assert.Equal(t, 33, eng.Progress())
	assert.Nil(t, eng.NextQuestion(), "everything applicable is answered")
}

func TestProgress_ZeroQuestions(t *testing.T) {
	// Constructed directly: the registry rejects empty trees, but the engine
	// itself must not divide by zero.
	eng, err := flow.Resume(
		&domain.Session{ProjectType: "empty"},
		staticSource{tree: &domain.QuestionTree{ProjectType: "empty", Name: "Empty"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 0, eng.Progress())
	assert.Equal(t, 0, eng.EstimateTotal())
	assert.Nil(t, eng.NextQuestion())
}

// staticSource serves a single tree without registry validation.
type staticSource struct {
	tree *domain.QuestionTree
}

func (s staticSource) Get(projectType string) (*domain.QuestionTree, error) {
	if s.tree.ProjectType != projectType {
		return nil, domain.ErrTreeNotFound
	}
	return s.tree, nil
}

func (s staticSource) List() ([]string, error) {
	return []string{s.tree.ProjectType}, nil
}
