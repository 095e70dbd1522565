package middleware

import (
	"context"
	"regexp"

	"github.com/permitpath/permitpath/pkg/domain"
	"github.com/permitpath/permitpath/pkg/ports"
)

// Masked replaces answer values whose question ID matches a PII pattern.
const Masked = "***"

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks answers to questions
// whose IDs match the patterns before they reach the underlying store.
// Loaded sessions keep the mask; the engine treats a masked answer as
// answered, so resuming never re-asks a redacted question.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	// Clone to avoid side effects on the in-memory session used by the engine.
	cloned := sess.Clone()

	for id := range cloned.Answers {
		if m.matches(id) {
			cloned.Answers[id] = Masked
		}
	}
	for i, entry := range cloned.History {
		if m.matches(entry.QuestionID) {
			cloned.History[i].Answer = Masked
		}
	}

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) matches(questionID string) bool {
	for _, p := range m.patterns {
		if p.MatchString(questionID) {
			return true
		}
	}
	return false
}
