package permitpath_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/permitpath/permitpath"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresTreesDirOrSource(t *testing.T) {
	_, err := permitpath.New("")
	assert.Error(t, err)
}

func TestNew_LoadsTreesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	treeYAML := `
name: Window Replacement
questions:
  - id: count
    text: How many windows are you replacing?
    type: number
    required: true
    unit: windows
  - id: resize
    text: Are any openings being resized?
    type: yes-no
    required: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "window-replacement.yaml"), []byte(treeYAML), 0644))

	app, err := permitpath.New(dir)
	require.NoError(t, err)

	types, err := app.ProjectTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"window-replacement"}, types)
}

func TestApp_Walkthrough(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(&domain.QuestionTree{
		ProjectType: "fence",
		Name:        "Fence Installation",
		Questions: []domain.Question{
			{ID: "height", Text: "How tall is the fence?", Type: domain.KindNumber, Required: true, Unit: "ft",
				Validation: &domain.ValidationRule{Max: func() *float64 { v := 12.0; return &v }()}},
			{ID: "front-yard", Text: "Is any part in the front yard?", Type: domain.KindYesNo, Required: true},
		},
	}))

	app, err := permitpath.New("", permitpath.WithSource(reg))
	require.NoError(t, err)

	ctx := context.Background()
	id, prompt, err := app.StartWalkthrough(ctx, "fence")
	require.NoError(t, err)
	require.NotNil(t, prompt)
	assert.Equal(t, "height", prompt.Question.ID)

	// A rejected answer leaves the walkthrough in place.
	_, validation, err := app.SubmitAnswer(ctx, id, "height", float64(20))
	require.NoError(t, err)
	assert.False(t, validation.Valid)

	next, validation, err := app.SubmitAnswer(ctx, id, "height", float64(6))
	require.NoError(t, err)
	require.True(t, validation.Valid)
	require.NotNil(t, next)
	assert.Equal(t, "front-yard", next.Question.ID)

	next, _, err = app.SubmitAnswer(ctx, id, "front-yard", "yes")
	require.NoError(t, err)
	assert.Nil(t, next)

	review, err := app.Review(ctx, id)
	require.NoError(t, err)
	require.Len(t, review, 2)
	assert.Equal(t, "6 ft", review[0].Answer)
	assert.Equal(t, "Yes", review[1].Answer)

	require.NoError(t, app.EndWalkthrough(ctx, id))
	_, err = app.NextQuestion(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestApp_Watch_UnsupportedSource(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(&domain.QuestionTree{
		ProjectType: "fence",
		Name:        "Fence Installation",
		Questions:   []domain.Question{{ID: "height", Text: "How tall?", Type: domain.KindNumber}},
	}))

	app, err := permitpath.New("", permitpath.WithSource(reg))
	require.NoError(t, err)

	// The registry supports watching only when loaded from a directory.
	_, err = app.Watch(context.Background())
	assert.Error(t, err)
}
