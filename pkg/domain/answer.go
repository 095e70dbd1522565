package domain

import (
	"fmt"
	"strings"
	"time"
)

// AnswerEntry is one item of the append-only answer history.
type AnswerEntry struct {
	QuestionID string    `json:"question_id" yaml:"question_id"`
	Answer     any       `json:"answer" yaml:"answer"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// Prompt is the next question to ask, together with position and progress
// metadata for a progress bar.
type Prompt struct {
	Question Question `json:"question"`

	// Number is the 1-based position of the question about to be asked.
	Number int `json:"number"`

	// Total is the estimated number of applicable questions. It adapts as
	// answers open or prune conditional branches.
	Total int `json:"total"`

	// Progress is a 0-100 percentage. It is not clamped: when a late answer
	// prunes branches below the answered count it can exceed 100, and
	// display layers are expected to clamp it.
	Progress int `json:"progress"`
}

// ReviewItem is one formatted line of the end-of-walkthrough review.
type ReviewItem struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// Summary is the read-only snapshot handed to downstream consumers such as
// the fee estimator or an explanation generator.
type Summary struct {
	ProjectType string         `json:"project_type"`
	ProjectName string         `json:"project_name"`
	Answers     map[string]any `json:"answers"`
	History     []AnswerEntry  `json:"history"`
	Timestamp   time.Time      `json:"timestamp"`
}

// FormatAnswer renders a raw answer value for display.
//
//   - yes-no: "yes" becomes "Yes", anything else "No".
//   - select: the matching option label, falling back to the raw value.
//   - multi-select: option labels joined with ", ".
//   - number with a unit: "200 amps".
//   - otherwise: the raw value unchanged.
func FormatAnswer(value any, q Question) string {
	switch q.Type {
	case KindYesNo:
		if Stringify(value) == "yes" {
			return "Yes"
		}
		return "No"
	case KindSelect:
		return optionLabel(value, q.Options)
	case KindMultiSelect:
		seq, ok := Sequence(value)
		if !ok {
			return Stringify(value)
		}
		labels := make([]string, len(seq))
		for i, item := range seq {
			labels[i] = optionLabel(item, q.Options)
		}
		return strings.Join(labels, ", ")
	case KindNumber:
		if q.Unit != "" {
			return Stringify(value) + " " + q.Unit
		}
		return Stringify(value)
	default:
		return Stringify(value)
	}
}

func optionLabel(value any, options []Option) string {
	for _, opt := range options {
		if looseEqual(value, opt.Value) {
			return opt.Label
		}
	}
	return Stringify(value)
}

// Stringify renders an answer value as a plain string.
func Stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
