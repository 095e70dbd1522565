package domain

// QuestionKind constants define how an answer is captured and validated.
const (
	// KindYesNo expects the literal answers "yes" or "no".
	KindYesNo = "yes-no"
	// KindSelect expects exactly one of the question's option values.
	KindSelect = "select"
	// KindMultiSelect expects a sequence of option values.
	KindMultiSelect = "multi-select"
	// KindNumber expects a numeric answer, optionally range-checked.
	KindNumber = "number"
	// KindText expects free-form text, optionally pattern-checked.
	KindText = "text"
)

// Option is a selectable choice for select and multi-select questions.
type Option struct {
	Value string `json:"value" yaml:"value" mapstructure:"value"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// ValidationRule constrains number and text answers.
// Min and Max apply to number questions; Pattern applies to the string form
// of any answer. ErrorMessage, when set, replaces the built-in message.
type ValidationRule struct {
	Min          *float64 `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max          *float64 `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
	Pattern      string   `json:"pattern,omitempty" yaml:"pattern,omitempty" mapstructure:"pattern"`
	ErrorMessage string   `json:"error_message,omitempty" yaml:"error_message,omitempty" mapstructure:"error_message"`
}

// Question is a single step of a permit questionnaire.
type Question struct {
	ID   string `json:"id" yaml:"id" mapstructure:"id"`
	Text string `json:"text" yaml:"text" mapstructure:"text"`
	Type string `json:"type" yaml:"type" mapstructure:"type"`

	// Options holds the choices for select and multi-select questions.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`

	Required bool `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`

	// MinSelections is the minimum number of choices for multi-select questions.
	MinSelections int `json:"min_selections,omitempty" yaml:"min_selections,omitempty" mapstructure:"min_selections"`

	// Unit is appended to formatted number answers (e.g. "sq ft", "amps").
	Unit string `json:"unit,omitempty" yaml:"unit,omitempty" mapstructure:"unit"`

	Validation *ValidationRule `json:"validation,omitempty" yaml:"validation,omitempty" mapstructure:"validation"`

	// Condition gates the question. A nil condition means always applicable.
	Condition *Condition `json:"condition,omitempty" yaml:"condition,omitempty" mapstructure:"condition"`
}

// Applicable reports whether the question should be offered given the
// current answer set.
func (q Question) Applicable(answers map[string]any) bool {
	return q.Condition.Matches(answers)
}
