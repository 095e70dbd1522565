package domain_test

import (
	"testing"

	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCondition_Matches(t *testing.T) {
	answers := map[string]any{
		"panel-upgrade": "yes",
		"amps":          float64(200),
		"work-items":    []any{"outlets", "subpanel"},
	}

	tests := []struct {
		name      string
		condition *domain.Condition
		want      bool
	}{
		{"nil condition is vacuously true", nil, true},
		{"no operand is vacuously true", &domain.Condition{Field: "panel-upgrade"}, true},
		{"equals match", &domain.Condition{Field: "panel-upgrade", Equals: "yes"}, true},
		{"equals mismatch", &domain.Condition{Field: "panel-upgrade", Equals: "no"}, false},
		{"equals unanswered field", &domain.Condition{Field: "missing", Equals: "yes"}, false},
		{"equals numeric yaml int vs json float", &domain.Condition{Field: "amps", Equals: 200}, true},
		{"not-equals mismatch holds", &domain.Condition{Field: "panel-upgrade", NotEquals: "no"}, true},
		{"not-equals match fails", &domain.Condition{Field: "panel-upgrade", NotEquals: "yes"}, false},
		{"not-equals unanswered field holds", &domain.Condition{Field: "missing", NotEquals: "yes"}, true},
		{"contains member", &domain.Condition{Field: "work-items", Contains: "subpanel"}, true},
		{"contains non-member", &domain.Condition{Field: "work-items", Contains: "rewire"}, false},
		{"contains on scalar answer", &domain.Condition{Field: "panel-upgrade", Contains: "yes"}, false},
		{"contains on unanswered field", &domain.Condition{Field: "missing", Contains: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.condition.Matches(answers))
		})
	}
}

func TestCondition_Matches_StringSlice(t *testing.T) {
	// Typed callers hand over []string instead of []any.
	answers := map[string]any{"work-items": []string{"outlets"}}
	cond := &domain.Condition{Field: "work-items", Contains: "outlets"}
	assert.True(t, cond.Matches(answers))
}
