package domain

import "time"

// Session is the persistable snapshot of one walkthrough.
//
// History is the source of truth; Answers is a derived cache (the fold of
// History with last entry per question winning) kept in sync by the engine.
// Cursor marks where the next scan for an applicable question begins.
type Session struct {
	ProjectType string         `json:"project_type"`
	TreeName    string         `json:"tree_name"`
	Answers     map[string]any `json:"answers"`
	History     []AnswerEntry  `json:"history"`
	Cursor      int            `json:"cursor"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Clone returns a deep copy so stores and callers cannot alias each other's
// mutable state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.Answers = make(map[string]any, len(s.Answers))
	for k, v := range s.Answers {
		next.Answers[k] = v
	}
	next.History = make([]AnswerEntry, len(s.History))
	copy(next.History, s.History)
	return &next
}
