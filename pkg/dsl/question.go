package dsl

import (
	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/registry"
)

// QuestionBuilder provides a fluent API for configuring a question.
type QuestionBuilder struct {
	question domain.Question
	builder  *Builder
}

// YesNo marks the question as a yes/no question.
func (q *QuestionBuilder) YesNo() *QuestionBuilder {
	q.question.Type = domain.KindYesNo
	return q
}

// Number marks the question as numeric. Unit is appended to formatted
// answers; pass "" for unitless numbers.
func (q *QuestionBuilder) Number(unit string) *QuestionBuilder {
	q.question.Type = domain.KindNumber
	q.question.Unit = unit
	return q
}

// Text marks the question as free-form text.
func (q *QuestionBuilder) Text() *QuestionBuilder {
	q.question.Type = domain.KindText
	return q
}

// Select marks the question as single-choice with the given options.
func (q *QuestionBuilder) Select(options ...domain.Option) *QuestionBuilder {
	q.question.Type = domain.KindSelect
	q.question.Options = options
	return q
}

// MultiSelect marks the question as multi-choice with the given options.
func (q *QuestionBuilder) MultiSelect(options ...domain.Option) *QuestionBuilder {
	q.question.Type = domain.KindMultiSelect
	q.question.Options = options
	return q
}

// Opt is shorthand for constructing an Option.
func Opt(value, label string) domain.Option {
	return domain.Option{Value: value, Label: label}
}

// Required makes an empty answer invalid.
func (q *QuestionBuilder) Required() *QuestionBuilder {
	q.question.Required = true
	return q
}

// MinSelections sets the minimum choice count for multi-select questions.
func (q *QuestionBuilder) MinSelections(n int) *QuestionBuilder {
	q.question.MinSelections = n
	return q
}

// Range constrains a numeric answer to [min, max].
func (q *QuestionBuilder) Range(min, max float64) *QuestionBuilder {
	q.ensureValidation()
	q.question.Validation.Min = &min
	q.question.Validation.Max = &max
	return q
}

// Min constrains a numeric answer to at least min.
func (q *QuestionBuilder) Min(min float64) *QuestionBuilder {
	q.ensureValidation()
	q.question.Validation.Min = &min
	return q
}

// Max constrains a numeric answer to at most max.
func (q *QuestionBuilder) Max(max float64) *QuestionBuilder {
	q.ensureValidation()
	q.question.Validation.Max = &max
	return q
}

// Pattern constrains the answer's string form to a regular expression.
func (q *QuestionBuilder) Pattern(pattern string) *QuestionBuilder {
	q.ensureValidation()
	q.question.Validation.Pattern = pattern
	return q
}

// ErrorMessage replaces the built-in validation message.
func (q *QuestionBuilder) ErrorMessage(message string) *QuestionBuilder {
	q.ensureValidation()
	q.question.Validation.ErrorMessage = message
	return q
}

// WhenEquals gates the question on an earlier answer being equal to value.
func (q *QuestionBuilder) WhenEquals(field string, value any) *QuestionBuilder {
	q.question.Condition = &domain.Condition{Field: field, Equals: value}
	return q
}

// WhenNotEquals gates the question on an earlier answer differing from value.
// The condition also holds while the field is unanswered.
func (q *QuestionBuilder) WhenNotEquals(field string, value any) *QuestionBuilder {
	q.question.Condition = &domain.Condition{Field: field, NotEquals: value}
	return q
}

// WhenContains gates the question on an earlier multi-select answer
// containing value.
func (q *QuestionBuilder) WhenContains(field string, value any) *QuestionBuilder {
	q.question.Condition = &domain.Condition{Field: field, Contains: value}
	return q
}

// Ask continues the chain on the parent builder.
func (q *QuestionBuilder) Ask(id, text string) *QuestionBuilder {
	return q.builder.Ask(id, text)
}

// Build continues the chain on the parent builder.
func (q *QuestionBuilder) Build() (*domain.QuestionTree, error) {
	return q.builder.Build()
}

// Source continues the chain on the parent builder.
func (q *QuestionBuilder) Source() (*registry.Registry, error) {
	return q.builder.Source()
}

func (q *QuestionBuilder) ensureValidation() {
	if q.question.Validation == nil {
		q.question.Validation = &domain.ValidationRule{}
	}
}
