package flow

import (
	"fmt"
	"math"
	"regexp"

	"github.com/permitpath/permitpath/pkg/domain"
)

// ValidateAnswer checks a candidate value against a question's rules without
// touching engine state. Failures are reported as a result value, never an
// error, so callers can re-prompt freely.
func (e *Engine) ValidateAnswer(questionID string, value any) domain.Validation {
	q, ok := e.tree.Find(questionID)
	if !ok {
		return domain.Invalid("Question not found")
	}

	if q.Required && isEmpty(value) {
		return domain.Invalid("This question is required")
	}

	if q.Type == domain.KindNumber {
		if v := validateNumber(q, value); !v.Valid {
			return v
		}
	}

	if q.Validation != nil && q.Validation.Pattern != "" {
		if v := validatePattern(q, value); !v.Valid {
			return v
		}
	}

	if q.Type == domain.KindMultiSelect && q.MinSelections > 0 {
		seq, ok := domain.Sequence(value)
		if !ok || len(seq) < q.MinSelections {
			return domain.Invalid(fmt.Sprintf("Please select at least %d option(s)", q.MinSelections))
		}
	}

	return domain.Valid()
}

func validateNumber(q domain.Question, value any) domain.Validation {
	n, ok := domain.ParseNumber(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return domain.Invalid("Please enter a valid number")
	}

	if q.Validation == nil {
		return domain.Valid()
	}
	if q.Validation.Min != nil && n < *q.Validation.Min {
		return domain.Invalid(messageOr(q, fmt.Sprintf("Minimum value is %v", *q.Validation.Min)))
	}
	if q.Validation.Max != nil && n > *q.Validation.Max {
		return domain.Invalid(messageOr(q, fmt.Sprintf("Maximum value is %v", *q.Validation.Max)))
	}
	return domain.Valid()
}

func validatePattern(q domain.Question, value any) domain.Validation {
	re, err := regexp.Compile(q.Validation.Pattern)
	if err != nil {
		// The registry rejects uncompilable patterns at load time; a tree
		// that bypassed it cannot match anything.
		return domain.Invalid(messageOr(q, "Invalid format"))
	}
	if !re.MatchString(domain.Stringify(value)) {
		return domain.Invalid(messageOr(q, "Invalid format"))
	}
	return domain.Valid()
}

func messageOr(q domain.Question, fallback string) string {
	if q.Validation != nil && q.Validation.ErrorMessage != "" {
		return q.Validation.ErrorMessage
	}
	return fallback
}

// isEmpty treats nil and the empty string as missing. An empty slice is not
// "empty" here: multi-select sufficiency is MinSelections' job.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
