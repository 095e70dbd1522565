package flow_test

import (
	"testing"

	"github.com/permitpath/permitpath/internal/flow"
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func validationTree() *domain.QuestionTree {
	return &domain.QuestionTree{
		ProjectType: "kitchen-remodel",
		Name:        "Kitchen Remodel",
		Questions: []domain.Question{
			{ID: "scope", Text: "Describe the scope of work", Type: domain.KindText, Required: true},
			{ID: "sqft", Text: "How many square feet are affected?", Type: domain.KindNumber, Required: true,
				Validation: &domain.ValidationRule{Min: floatPtr(5), Max: floatPtr(5000)}},
			{ID: "budget", Text: "What is the project budget?", Type: domain.KindNumber,
				Validation: &domain.ValidationRule{Min: floatPtr(1000), ErrorMessage: "Budget must be at least $1,000"}},
			{ID: "apn", Text: "What is the parcel number?", Type: domain.KindText,
				Validation: &domain.ValidationRule{Pattern: `^\d{3}-\d{3}-\d{3}$`}},
			{ID: "work-items", Text: "Which work items apply?", Type: domain.KindMultiSelect, MinSelections: 2,
				Options: []domain.Option{
					{Value: "cabinets", Label: "Cabinets"},
					{Value: "plumbing", Label: "Plumbing"},
					{Value: "electrical", Label: "Electrical"},
				}},
		},
	}
}

func TestValidateAnswer(t *testing.T) {
	source := newSource(t, validationTree())
	eng, err := flow.New("kitchen-remodel", source)
	require.NoError(t, err)

	tests := []struct {
		name       string
		questionID string
		value      any
		wantValid  bool
		wantError  string
	}{
		{"unknown question", "nope", "x", false, "Question not found"},
		{"required empty string", "scope", "", false, "This question is required"},
		{"required nil", "scope", nil, false, "This question is required"},
		{"required satisfied", "scope", "replace cabinets", true, ""},
		{"number not a number", "sqft", "a lot", false, "Please enter a valid number"},
		{"number below min", "sqft", float64(3), false, "Minimum value is 5"},
		{"number above max", "sqft", float64(6000), false, "Maximum value is 5000"},
		{"number in range", "sqft", float64(10), true, ""},
		{"number as string parses", "sqft", "250", true, ""},
		{"custom min message", "budget", float64(500), false, "Budget must be at least $1,000"},
		{"number nil does not parse", "budget", nil, false, "Please enter a valid number"},
		{"pattern mismatch", "apn", "12-34", false, "Invalid format"},
		{"pattern match", "apn", "123-456-789", true, ""},
		{"multi-select too few", "work-items", []any{"cabinets"}, false, "Please select at least 2 option(s)"},
		{"multi-select not a sequence", "work-items", "cabinets", false, "Please select at least 2 option(s)"},
		{"multi-select enough", "work-items", []any{"cabinets", "plumbing"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eng.ValidateAnswer(tt.questionID, tt.value)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantError, got.Error)
		})
	}
}

func TestValidateAnswer_DoesNotMutateState(t *testing.T) {
	source := newSource(t, validationTree())
	eng, err := flow.New("kitchen-remodel", source)
	require.NoError(t, err)

	before := eng.NextQuestion()
	eng.ValidateAnswer("scope", "")
	eng.ValidateAnswer("sqft", float64(3))

	assert.Equal(t, before, eng.NextQuestion())
	assert.Empty(t, eng.Review())
}
